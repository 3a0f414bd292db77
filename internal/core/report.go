package core

import "sort"

type (
	// EventTotal is the summed amount for one event.
	EventTotal struct {
		Event  string
		Amount int64
	}

	// DateTotal is the summed amount for one calendar date.
	DateTotal struct {
		Date   Date
		Amount int64
	}

	// Report holds every aggregate the dashboard consumes. It is fully
	// re-derived from the record set on each call; there is no cached or
	// incremental state to invalidate.
	Report struct {
		TotalAmount  int64
		EventCount   int
		ProductCount int
		// ByEvent is sorted by amount descending; ties keep the order in
		// which the event first appeared in the input.
		ByEvent []EventTotal
		// ByDate is sorted by date ascending.
		ByDate []DateTotal
		// Detail is the full record set sorted by date descending, stable
		// for equal dates (append order preserved).
		Detail []SaleRecord
	}
)

// BuildReport aggregates the full record sequence as returned by ReadAll.
// An empty input is a normal case: all sums and counts are zero and all
// slices are empty.
func BuildReport(records []SaleRecord) Report {
	rep := Report{
		ByEvent: []EventTotal{},
		ByDate:  []DateTotal{},
		Detail:  make([]SaleRecord, len(records)),
	}
	copy(rep.Detail, records)

	byEvent := map[string]int64{}
	byDate := map[string]int64{}
	products := map[string]struct{}{}
	var eventOrder []string
	var dateOrder []Date

	for _, r := range records {
		rep.TotalAmount += r.Amount
		if _, seen := byEvent[r.Event]; !seen {
			eventOrder = append(eventOrder, r.Event)
		}
		byEvent[r.Event] += r.Amount
		key := r.Date.String()
		if _, seen := byDate[key]; !seen {
			dateOrder = append(dateOrder, r.Date)
		}
		byDate[key] += r.Amount
		products[r.Product] = struct{}{}
	}

	rep.EventCount = len(byEvent)
	rep.ProductCount = len(products)

	for _, ev := range eventOrder {
		rep.ByEvent = append(rep.ByEvent, EventTotal{Event: ev, Amount: byEvent[ev]})
	}
	sort.SliceStable(rep.ByEvent, func(i, j int) bool {
		return rep.ByEvent[i].Amount > rep.ByEvent[j].Amount
	})

	for _, d := range dateOrder {
		rep.ByDate = append(rep.ByDate, DateTotal{Date: d, Amount: byDate[d.String()]})
	}
	sort.SliceStable(rep.ByDate, func(i, j int) bool {
		return rep.ByDate[i].Date.Before(rep.ByDate[j].Date.Time)
	})

	sort.SliceStable(rep.Detail, func(i, j int) bool {
		return rep.Detail[i].Date.After(rep.Detail[j].Date.Time)
	})

	return rep
}
