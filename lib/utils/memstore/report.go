package memstore

import (
	"time"

	reportstore "hire-backend/lib/moderation/report-store"
	"hire-backend/models"
	moderationapimodels "hire-backend/models/api/moderation"
	dbmodels "hire-backend/models/db"
)

func (d *DB) ReportStore() reportstore.Provider {
	return reportStore{d: d}
}

type reportStore struct {
	d *DB
}

func (s reportStore) Create(rec dbmodels.Report) (string, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec.BaseModel = s.d.newBase()
	s.d.Reports[rec.ID] = &rec
	return rec.ID, nil
}

func (s reportStore) GetByID(id string) (*dbmodels.Report, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Reports[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (s reportStore) SetStatus(id string, status models.ReportStatus) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Reports[id]
	if !ok {
		return notFound("report")
	}
	rec.Status = status
	rec.UpdatedAt = s.d.tick()
	return nil
}

func (s reportStore) filtered(filter moderationapimodels.ReportFilter) []dbmodels.Report {
	list := []dbmodels.Report{}
	for _, rec := range s.d.Reports {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		list = append(list, *rec)
	}
	sortDesc(list, func(r dbmodels.Report) time.Time { return r.CreatedAt })
	return list
}

func (s reportStore) ListCount(filter moderationapimodels.ReportFilter) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return int64(len(s.filtered(filter))), nil
}

func (s reportStore) List(filter moderationapimodels.ReportFilter) ([]dbmodels.Report, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	page, limit := filter.GetPage()
	return paginate(s.filtered(filter), page, limit), nil
}
