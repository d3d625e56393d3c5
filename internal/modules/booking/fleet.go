package booking

import (
	"fmt"
	"math/rand/v2"
)

const layoutRows = 10

// seatColumns lists each row's slots; bookedAbove is the roll a seat must beat to start booked.
var seatColumns = []struct {
	prefix      string
	bookedAbove float64
}{
	{"A", 0.7},
	{"B", 0.7},
	{AisleID, 0},
	{"C", 0.6},
	{"D", 0.8},
}

// GenerateSeatLayout builds a 10-row A,B,aisle,C,D layout with some seats already booked.
// roll returns values in [0, 1); nil uses math/rand/v2.
func GenerateSeatLayout(roll func() float64) [][]Seat {
	if roll == nil {
		roll = rand.Float64
	}
	layout := make([][]Seat, 0, layoutRows)
	for i := 1; i <= layoutRows; i++ {
		row := make([]Seat, 0, len(seatColumns))
		for _, col := range seatColumns {
			if col.prefix == AisleID {
				row = append(row, Seat{ID: AisleID, Status: SeatAisle})
				continue
			}
			status := SeatAvailable
			if roll() > col.bookedAbove {
				status = SeatBooked
			}
			row = append(row, Seat{ID: fmt.Sprintf("%s%d", col.prefix, i), Status: status})
		}
		layout = append(layout, row)
	}
	return layout
}

// DefaultFleet is the operator timetable served on every route.
func DefaultFleet(roll func() float64) []Bus {
	logo := func(seed string) string { return "https://picsum.photos/seed/" + seed + "/40/40" }
	return []Bus{
		{ID: "bus1", Operator: "GIGM", OperatorLogo: logo("gigm"), DepartureTime: "08:00", ArrivalTime: "10:30", Duration: "2h 30m",
			Price: 8500, Rating: 4.5, Reviews: 120, Amenities: Amenities{AC: true, WiFi: true, Power: true}, SeatLayout: GenerateSeatLayout(roll)},
		{ID: "bus2", Operator: "God Is Good Motors", OperatorLogo: logo("godisgood"), DepartureTime: "09:15", ArrivalTime: "11:45", Duration: "2h 30m",
			Price: 9200, Rating: 4.8, Reviews: 250, Amenities: Amenities{AC: true, WiFi: true, Power: true, Sleeper: true}, SeatLayout: GenerateSeatLayout(roll)},
		{ID: "bus3", Operator: "Chisco Transport", OperatorLogo: logo("chisco"), DepartureTime: "11:00", ArrivalTime: "13:45", Duration: "2h 45m",
			Price: 7800, Rating: 4.2, Reviews: 95, Amenities: Amenities{AC: true, Power: true}, SeatLayout: GenerateSeatLayout(roll)},
		{ID: "bus4", Operator: "ABC Transport", OperatorLogo: logo("abc"), DepartureTime: "14:30", ArrivalTime: "17:00", Duration: "2h 30m",
			Price: 8800, Rating: 4.6, Reviews: 180, Amenities: Amenities{AC: true, WiFi: true}, SeatLayout: GenerateSeatLayout(roll)},
		{ID: "bus5", Operator: "Young Shall Grow", OperatorLogo: logo("young"), DepartureTime: "07:30", ArrivalTime: "10:15", Duration: "2h 45m",
			Price: 7500, Rating: 4.0, Reviews: 88, Amenities: Amenities{AC: true}, SeatLayout: GenerateSeatLayout(roll)},
	}
}

// occupancy is booked seats over bookable seats; aisles are not seats.
func occupancy(layout [][]Seat) float64 {
	total, booked := 0, 0
	for _, row := range layout {
		for _, s := range row {
			switch s.Status {
			case SeatAisle:
				continue
			case SeatBooked:
				booked++
			}
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(booked) / float64(total)
}

func cloneLayout(layout [][]Seat) [][]Seat {
	out := make([][]Seat, len(layout))
	for i, row := range layout {
		out[i] = append([]Seat(nil), row...)
	}
	return out
}
