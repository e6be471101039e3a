package analytics

import (
	"errors"
	"fmt"
	"math"

	"foodtook_backoffice/pkg/export"
)

// ErrUnknownSection is returned for a section name outside the dashboard
var ErrUnknownSection = errors.New("unknown metrics section")

// Section names the dashboard tabs
type Section string

const (
	SectionOverview    Section = "overview"
	SectionGMV         Section = "gmv"
	SectionRetention   Section = "retention"
	SectionFunnel      Section = "funnel"
	SectionRestaurants Section = "restaurants"
	SectionRiders      Section = "riders"
	SectionHeatmap     Section = "heatmap"
)

// Sections lists every section in sidebar order
var Sections = []Section{
	SectionOverview, SectionGMV, SectionRetention, SectionFunnel,
	SectionRestaurants, SectionRiders, SectionHeatmap,
}

func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

type KPI struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Change float64 `json:"change"`
}

type GMVPoint struct {
	Month  string  `json:"month"`
	GMV    float64 `json:"gmv"`
	Orders int     `json:"orders"`
	AOV    float64 `json:"aov"`
}

type Cohort struct {
	Cohort string  `json:"cohort"`
	Size   int     `json:"size"`
	Month1 float64 `json:"month1"`
	Month2 float64 `json:"month2"`
	Month3 float64 `json:"month3"`
	Month6 float64 `json:"month6"`
}

type FunnelStage struct {
	Stage string `json:"stage"`
	Users int    `json:"users"`
	// ConversionRate is the share of the previous stage that reached this one, in percent
	ConversionRate float64 `json:"conversionRate"`
	// OverallRate is the share of the first stage that reached this one, in percent
	OverallRate float64 `json:"overallRate"`
}

type RestaurantPerformance struct {
	Name               string  `json:"name"`
	GMV                float64 `json:"gmv"`
	MarginContribution float64 `json:"marginContribution"`
	ConversionRate     float64 `json:"conversionRate"`
	OrdersFromStories  int     `json:"ordersFromStories"`
	AdsSpend           float64 `json:"adsSpend"`
	DependencyIndex    float64 `json:"dependencyIndex"`
}

type RiderOperations struct {
	Zone               string  `json:"zone"`
	ActiveRiders       int     `json:"activeRiders"`
	DeliveriesPerHour  float64 `json:"deliveriesPerHour"`
	AvgDeliveryMinutes float64 `json:"avgDeliveryMinutes"`
	OnTimeRate         float64 `json:"onTimeRate"`
	Utilization        float64 `json:"utilization"`
}

type HeatPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"`
	Zone      string  `json:"zone"`
}

func Overview() []KPI {
	return []KPI{
		{Key: "gmv", Label: "GMV mensual", Value: 4820000, Unit: "MXN", Change: 12.4},
		{Key: "orders", Label: "Pedidos", Value: 18240, Unit: "count", Change: 8.1},
		{Key: "aov", Label: "Ticket promedio", Value: 264.3, Unit: "MXN", Change: 3.9},
		{Key: "activeUsers", Label: "Usuarios activos", Value: 9350, Unit: "count", Change: 5.6},
		{Key: "activeRestaurants", Label: "Restaurantes activos", Value: 412, Unit: "count", Change: 2.2},
		{Key: "activeRiders", Label: "Repartidores activos", Value: 286, Unit: "count", Change: -1.4},
	}
}

func GMVSeries() []GMVPoint {
	return []GMVPoint{
		{Month: "2024-01", GMV: 3120000, Orders: 12450, AOV: 250.6},
		{Month: "2024-02", GMV: 3290000, Orders: 13010, AOV: 252.9},
		{Month: "2024-03", GMV: 3610000, Orders: 14120, AOV: 255.7},
		{Month: "2024-04", GMV: 3850000, Orders: 14870, AOV: 258.9},
		{Month: "2024-05", GMV: 4120000, Orders: 15820, AOV: 260.4},
		{Month: "2024-06", GMV: 4290000, Orders: 16350, AOV: 262.4},
		{Month: "2024-07", GMV: 4820000, Orders: 18240, AOV: 264.3},
	}
}

func Retention() []Cohort {
	return []Cohort{
		{Cohort: "2024-01", Size: 1820, Month1: 46.2, Month2: 38.5, Month3: 33.1, Month6: 24.8},
		{Cohort: "2024-02", Size: 1960, Month1: 47.9, Month2: 39.8, Month3: 34.0, Month6: 25.6},
		{Cohort: "2024-03", Size: 2140, Month1: 49.3, Month2: 41.2, Month3: 35.7},
		{Cohort: "2024-04", Size: 2310, Month1: 50.1, Month2: 42.6},
		{Cohort: "2024-05", Size: 2480, Month1: 51.4},
	}
}

var funnelCounts = []struct {
	stage string
	users int
}{
	{"app_open", 52000},
	{"restaurant_view", 31200},
	{"add_to_cart", 14800},
	{"checkout", 9100},
	{"order_placed", 7850},
}

// Funnel derives the conversion rates of each stage from the stage counts
func Funnel() []FunnelStage {
	stages := make([]FunnelStage, len(funnelCounts))
	for i, fc := range funnelCounts {
		stages[i] = FunnelStage{Stage: fc.stage, Users: fc.users, ConversionRate: 100, OverallRate: 100}
		if i == 0 {
			continue
		}
		stages[i].ConversionRate = rate(fc.users, funnelCounts[i-1].users)
		stages[i].OverallRate = rate(fc.users, funnelCounts[0].users)
	}
	return stages
}

func rate(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(of)*10000) / 100
}

func RestaurantPerformanceData() []RestaurantPerformance {
	return []RestaurantPerformance{
		{Name: "Tacos El Güero", GMV: 382000, MarginContribution: 18.2, ConversionRate: 24.5, OrdersFromStories: 312, AdsSpend: 12500, DependencyIndex: 0.42},
		{Name: "Sushi Nori", GMV: 295000, MarginContribution: 21.7, ConversionRate: 19.8, OrdersFromStories: 188, AdsSpend: 18400, DependencyIndex: 0.31},
		{Name: "La Pizzería de Don Beto", GMV: 241000, MarginContribution: 15.4, ConversionRate: 22.1, OrdersFromStories: 205, AdsSpend: 9800, DependencyIndex: 0.55},
		{Name: "Green Bowl", GMV: 173000, MarginContribution: 24.9, ConversionRate: 17.3, OrdersFromStories: 97, AdsSpend: 6100, DependencyIndex: 0.27},
		{Name: "Burgers Norte", GMV: 158000, MarginContribution: 13.6, ConversionRate: 20.4, OrdersFromStories: 143, AdsSpend: 7300, DependencyIndex: 0.61},
	}
}

func RiderOperationsData() []RiderOperations {
	return []RiderOperations{
		{Zone: "Centro", ActiveRiders: 74, DeliveriesPerHour: 2.6, AvgDeliveryMinutes: 27.4, OnTimeRate: 91.2, Utilization: 78.5},
		{Zone: "Roma-Condesa", ActiveRiders: 61, DeliveriesPerHour: 2.9, AvgDeliveryMinutes: 24.1, OnTimeRate: 93.8, Utilization: 82.3},
		{Zone: "Polanco", ActiveRiders: 48, DeliveriesPerHour: 2.3, AvgDeliveryMinutes: 29.6, OnTimeRate: 88.7, Utilization: 71.0},
		{Zone: "Coyoacán", ActiveRiders: 55, DeliveriesPerHour: 2.1, AvgDeliveryMinutes: 31.2, OnTimeRate: 86.4, Utilization: 68.9},
		{Zone: "Del Valle", ActiveRiders: 48, DeliveriesPerHour: 2.5, AvgDeliveryMinutes: 26.8, OnTimeRate: 90.1, Utilization: 75.6},
	}
}

func Heatmap() []HeatPoint {
	return []HeatPoint{
		{Lat: 19.4326, Lng: -99.1332, Intensity: 0.92, Zone: "Centro"},
		{Lat: 19.4194, Lng: -99.1625, Intensity: 0.88, Zone: "Roma-Condesa"},
		{Lat: 19.4328, Lng: -99.1950, Intensity: 0.71, Zone: "Polanco"},
		{Lat: 19.3500, Lng: -99.1620, Intensity: 0.64, Zone: "Coyoacán"},
		{Lat: 19.3850, Lng: -99.1690, Intensity: 0.77, Zone: "Del Valle"},
		{Lat: 19.3600, Lng: -99.1800, Intensity: 0.45, Zone: "San Ángel"},
	}
}

// Dataset returns the data behind a section
func Dataset(s Section) (interface{}, error) {
	switch s {
	case SectionOverview:
		return Overview(), nil
	case SectionGMV:
		return GMVSeries(), nil
	case SectionRetention:
		return Retention(), nil
	case SectionFunnel:
		return Funnel(), nil
	case SectionRestaurants:
		return RestaurantPerformanceData(), nil
	case SectionRiders:
		return RiderOperationsData(), nil
	case SectionHeatmap:
		return Heatmap(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

// Export flattens a section for CSV download
func Export(s Section) ([]string, []export.Record, error) {
	data, err := Dataset(s)
	if err != nil {
		return nil, nil, err
	}
	return export.FromStructs(data)
}
