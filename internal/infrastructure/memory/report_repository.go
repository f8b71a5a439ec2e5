package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepository)(nil)

const uncategorized = "Sin categoría"

// ReportRepository agregados de solo lectura calculados sobre el estado confirmado.
type ReportRepository struct {
	s *Store
}

func (r *ReportRepository) Overview(_ context.Context) (repository.OverviewResult, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	res := repository.OverviewResult{StockValue: decimal.Zero}
	for _, p := range r.s.products {
		if p.IsArchived() {
			continue
		}
		res.TotalProducts++
		if p.IsLowStock() {
			res.LowStock++
		}
		if p.IsOutOfStock() {
			res.OutOfStock++
		}
		res.TotalUnits += p.Quantity
		res.StockValue = res.StockValue.Add(p.Price.Mul(decimal.NewFromInt(p.Quantity)))
	}
	return res, nil
}

func (r *ReportRepository) ProductsByCategory(_ context.Context) ([]repository.CategoryCount, error) {
	r.s.mu.RLock()
	byID := make(map[string]*repository.CategoryCount)
	for _, p := range r.s.products {
		if p.IsArchived() {
			continue
		}
		key := p.CategoryID
		name := uncategorized
		if c, ok := r.s.categories[key]; ok {
			name = c.Name
		} else {
			key = ""
		}
		cc, ok := byID[key]
		if !ok {
			cc = &repository.CategoryCount{CategoryID: key, CategoryName: name}
			byID[key] = cc
		}
		cc.Products++
		cc.Units += p.Quantity
	}
	r.s.mu.RUnlock()

	out := make([]repository.CategoryCount, 0, len(byID))
	for _, cc := range byID {
		out = append(out, *cc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Products != out[j].Products {
			return out[i].Products > out[j].Products
		}
		return out[i].CategoryName < out[j].CategoryName
	})
	return out, nil
}

func (r *ReportRepository) MovementSeries(_ context.Context, from, to time.Time) ([]repository.MovementDay, error) {
	r.s.mu.RLock()
	byDay := make(map[time.Time]*repository.MovementDay)
	for _, m := range r.s.movements {
		if m.CreatedAt.Before(from) || m.CreatedAt.After(to) {
			continue
		}
		day := m.CreatedAt.UTC().Truncate(24 * time.Hour)
		d, ok := byDay[day]
		if !ok {
			d = &repository.MovementDay{Day: day}
			byDay[day] = d
		}
		d.Count++
		if m.Direction == entity.DirectionIn {
			d.UnitsIn += m.Quantity
		} else {
			d.UnitsOut += m.Quantity
		}
	}
	r.s.mu.RUnlock()

	out := make([]repository.MovementDay, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func (r *ReportRepository) TopMovers(_ context.Context, from, to time.Time, limit int) ([]repository.TopMover, error) {
	r.s.mu.RLock()
	byProduct := make(map[string]*repository.TopMover)
	for _, m := range r.s.movements {
		if m.Direction != entity.DirectionOut || m.CreatedAt.Before(from) || m.CreatedAt.After(to) {
			continue
		}
		tm, ok := byProduct[m.ProductID]
		if !ok {
			tm = &repository.TopMover{ProductID: m.ProductID}
			if p, found := r.s.products[m.ProductID]; found {
				tm.SKU = p.SKU
				tm.ProductName = p.Name
			}
			byProduct[m.ProductID] = tm
		}
		tm.UnitsOut += m.Quantity
		tm.Movements++
	}
	r.s.mu.RUnlock()

	out := make([]repository.TopMover, 0, len(byProduct))
	for _, tm := range byProduct {
		out = append(out, *tm)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnitsOut != out[j].UnitsOut {
			return out[i].UnitsOut > out[j].UnitsOut
		}
		return out[i].SKU < out[j].SKU
	})
	return page(out, limit, 0), nil
}

func (r *ReportRepository) BelowReorderLevel(_ context.Context) ([]repository.ReplenishmentItem, error) {
	r.s.mu.RLock()
	out := make([]repository.ReplenishmentItem, 0)
	for _, p := range r.s.products {
		if p.IsArchived() || p.ReorderLevel <= 0 || p.Quantity > p.ReorderLevel {
			continue
		}
		out = append(out, repository.ReplenishmentItem{
			ProductID:    p.ID,
			SKU:          p.SKU,
			ProductName:  p.Name,
			SupplierID:   p.SupplierID,
			Quantity:     p.Quantity,
			ReorderLevel: p.ReorderLevel,
			Price:        p.Price,
		})
	}
	r.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].ReorderLevel-out[i].Quantity, out[j].ReorderLevel-out[j].Quantity
		if di != dj {
			return di > dj
		}
		return out[i].SKU < out[j].SKU
	})
	return out, nil
}

func (r *ReportRepository) ActorActivity(_ context.Context, actorID string) (repository.ActorActivity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var res repository.ActorActivity
	for _, m := range r.s.movements {
		if m.ActorID != actorID {
			continue
		}
		if m.Direction == entity.DirectionIn {
			res.MovementsIn++
			res.UnitsIn += m.Quantity
		} else {
			res.MovementsOut++
			res.UnitsOut += m.Quantity
		}
	}
	return res, nil
}
