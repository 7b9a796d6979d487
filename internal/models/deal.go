package models

import "time"

// DealStatus is a pipeline stage. Values are the Spanish labels the
// board shows; they are also the wire/storage representation.
type DealStatus string

const (
	StatusLeadIn           DealStatus = "Lead In"
	StatusContacted        DealStatus = "Contactado"
	StatusMeetingScheduled DealStatus = "Reunión Agendada"
	StatusProposalSent     DealStatus = "Propuesta Enviada"
	StatusNegotiating      DealStatus = "Negociación"
	StatusWon              DealStatus = "Ganado"
	StatusLost             DealStatus = "Perdido"
)

// PipelineStages is the ordered active board. Won/Perdido are terminal
// and never get a column.
var PipelineStages = []DealStatus{
	StatusLeadIn,
	StatusContacted,
	StatusMeetingScheduled,
	StatusProposalSent,
	StatusNegotiating,
}

var AllStatuses = []DealStatus{
	StatusLeadIn,
	StatusContacted,
	StatusMeetingScheduled,
	StatusProposalSent,
	StatusNegotiating,
	StatusWon,
	StatusLost,
}

func IsValidStatus(s DealStatus) bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

type Country string

const (
	CountryColombia Country = "Colombia"
	CountryMexico   Country = "México"
	CountryOther    Country = "Otros"
)

func IsValidCountry(c Country) bool {
	return c == CountryColombia || c == CountryMexico || c == CountryOther
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func IsValidPriority(p Priority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type ActivityType string

const (
	ActivityCall    ActivityType = "Llamada"
	ActivityEmail   ActivityType = "Correo"
	ActivityMeeting ActivityType = "Reunión"
	ActivityNote    ActivityType = "Nota"
)

func IsValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityCall, ActivityEmail, ActivityMeeting, ActivityNote:
		return true
	}
	return false
}

// Fixed display rates. Deals store USD only; COP/MXN equivalents are
// computed at render time and never persisted.
const (
	RateCOP = 4200.0
	RateMXN = 20.5
)

// Activity is a logged or scheduled interaction owned by one Deal.
// Activities are append-only: once added they are never edited or
// removed. Completed is reserved for future use and stays false.
type Activity struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Content   string       `json:"content"`
	Date      string       `json:"date"` // calendar date, YYYY-MM-DD
	Completed bool         `json:"completed"`
}

// Deal is a tracked sales opportunity. ID is client-generated, unique
// across the collection and immutable after creation.
type Deal struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Value        float64    `json:"value"` // USD
	ContactName  string     `json:"contactName"`
	Organization string     `json:"organization"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	Address      string     `json:"address"`
	Status       DealStatus `json:"status"`
	Priority     Priority   `json:"priority"`
	Activities   []Activity `json:"activities"`
	NextSteps    string     `json:"nextSteps"`
	CreatedAt    string     `json:"createdAt"` // RFC3339, set once
	Country      Country    `json:"country"`
	SellerID     string     `json:"sellerId"`
}

// SeedDeals is the dataset a fresh install starts with.
func SeedDeals() []Deal {
	now := time.Now().UTC().Format(time.RFC3339)
	return []Deal{
		{
			ID:           "1",
			Title:        "Acuerdo con Restaurante El Olivo",
			Value:        12000,
			ContactName:  "Carlos García",
			Organization: "El Olivo Gourmet",
			Phone:        "+57 300 123 4567",
			Email:        "carlos@elolivo.com",
			Address:      "Calle 45 #12-34, Bogotá",
			Status:       StatusLeadIn,
			Priority:     PriorityHigh,
			Activities:   []Activity{},
			NextSteps:    "Llamar para confirmar degustación",
			CreatedAt:    now,
			Country:      CountryColombia,
			SellerID:     "sel-1",
		},
		{
			ID:           "2",
			Title:        "Suministro Cadena Foodie",
			Value:        45000,
			ContactName:  "Lucía Méndez",
			Organization: "Foodie Corp",
			Phone:        "+52 55 1234 5678",
			Email:        "lucia.m@foodiecorp.mx",
			Address:      "Av. Reforma 222, CDMX",
			Status:       StatusContacted,
			Priority:     PriorityMedium,
			Activities:   []Activity{},
			NextSteps:    "Enviar catálogo de temporada",
			CreatedAt:    now,
			Country:      CountryMexico,
			SellerID:     "sel-2",
		},
	}
}
