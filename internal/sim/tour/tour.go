// Package tour plays active tours one venue per turn.
package tour

import (
	"fmt"

	"github.com/louisbranch/encore/internal/platform/random"
	"github.com/louisbranch/encore/internal/sim/snapshot"
)

// A ticket priced here sells to everyone interested; every dollar above
// loses a share of the crowd.
const (
	comfortPrice     = 40
	elasticity       = 0.008
	minDemandFactor  = 0.1
	baseDrawPerPoint = 120
)

// Tick puts booked tours on the road and plays the next unplayed venue
// on every active tour, crediting revenue immediately and finishing
// tours that ran out of stops.
func Tick(entity *snapshot.Entity, rng random.Source, now snapshot.Date) {
	for i := range entity.Tours {
		tour := &entity.Tours[i]
		switch tour.Status {
		case snapshot.TourPlanning:
			begin(entity, tour, now)
		case snapshot.TourActive:
			playVenue(entity, tour, rng, now)
		}
	}
}

// begin announces a booked tour; the first venue plays next turn.
func begin(entity *snapshot.Entity, tour *snapshot.Tour, now snapshot.Date) {
	tour.Status = snapshot.TourActive
	started := now
	tour.StartedOn = &started
	entity.QueueEmail(snapshot.Email{
		From:    entity.ManagerName(),
		Subject: fmt.Sprintf("%s is on", tour.Name),
		Body:    fmt.Sprintf("Routing is locked for %d stops. First doors open next week.", len(tour.Venues)),
		Week:    now,
	})
}

func playVenue(entity *snapshot.Entity, tour *snapshot.Tour, rng random.Source, now snapshot.Date) {
	if tour.CurrentVenue >= len(tour.Venues) {
		finish(entity, tour, now)
		return
	}

	venue := &tour.Venues[tour.CurrentVenue]
	sold := demand(entity, tour.TicketPrice, rng)
	if sold > venue.Capacity {
		sold = venue.Capacity
	}

	venue.Played = true
	venue.TicketsSold = sold
	venue.Revenue = int64(sold) * tour.TicketPrice
	tour.Revenue += venue.Revenue
	entity.Money += venue.Revenue
	entity.Hype += 1
	if entity.Hype > 100 {
		entity.Hype = 100
	}

	tour.CurrentVenue++
	if tour.CurrentVenue >= len(tour.Venues) {
		finish(entity, tour, now)
	}
}

// demand is the number of fans willing to buy at the asked price.
func demand(entity *snapshot.Entity, price int64, rng random.Source) int {
	draw := (entity.Popularity + entity.Hype/2) * baseDrawPerPoint

	factor := 1.0
	if price > comfortPrice {
		factor = 1.0 - float64(price-comfortPrice)*elasticity
		if factor < minDemandFactor {
			factor = minDemandFactor
		}
	}

	return int(draw * factor * random.Jitter(rng, 0.8, 1.2))
}

// finish closes the tour and reports its total take.
func finish(entity *snapshot.Entity, tour *snapshot.Tour, now snapshot.Date) {
	tour.Status = snapshot.TourFinished
	entity.QueueEmail(snapshot.Email{
		From:    entity.ManagerName(),
		Subject: fmt.Sprintf("%s wrapped", tour.Name),
		Body:    fmt.Sprintf("That's a wrap on %s. Final gross across %d dates: $%d.", tour.Name, len(tour.Venues), tour.Revenue),
		Week:    now,
	})
}
