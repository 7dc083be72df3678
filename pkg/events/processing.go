// Package events provides common event processing utilities.
package events

import (
	"time"

	"github.com/iwvelando/payment-clauses/pkg/datetime"
)

// Event is a recurring payment event: Count occurrences, Frequency months
// apart, the first one on StartDate.
type Event struct {
	Name      string
	Amount    float64
	StartDate string
	Count     int
	Frequency int // months
	DateList  []time.Time
}

// Processor handles event processing operations
type Processor struct{}

// NewProcessor creates a new event processor
func NewProcessor() *Processor {
	return &Processor{}
}

// ParseDateLists processes date lists for multiple events
func (p *Processor) ParseDateLists(events []*Event) error {
	for _, event := range events {
		if err := event.FormDateList(); err != nil {
			return err
		}
	}
	return nil
}

// FormDateList handles the date to time.Time parsing for one given event.
// Every occurrence is computed from StartDate rather than from the previous
// one, so a series starting on the 31st returns to the 31st after a short
// month. An event without a StartDate has no dates.
func (event *Event) FormDateList() error {
	if event.StartDate == "" {
		event.DateList = nil
		return nil
	}

	startDateT, err := datetime.ParseISODate(event.StartDate)
	if err != nil {
		return err
	}

	count := event.Count
	if count < 1 {
		count = 1
	}
	frequency := event.Frequency
	if frequency < 1 {
		frequency = 1
	}

	dateList := make([]time.Time, count)
	for i := range dateList {
		dateList[i] = datetime.AddMonthsClamped(startDateT, i*frequency)
	}
	event.DateList = dateList

	return nil
}
