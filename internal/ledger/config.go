package ledger

// ServiceKind is the input shape a service offers on the booking form.
type ServiceKind string

const (
	ServiceCheckbox ServiceKind = "checkbox"
	ServiceDropdown ServiceKind = "dropdown"
	ServiceNumber   ServiceKind = "number"
)

// Service is one configurable add-on a booking can select.
type Service struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Kind    ServiceKind `json:"kind"`
	Options []string    `json:"options,omitempty"`
	Min     int         `json:"min,omitempty"`
	Max     int         `json:"max,omitempty"`
}

// ServiceConfig groups the configurable services by section.
type ServiceConfig struct {
	Infrastructure []Service `json:"infrastructure"`
	Decoration     []Service `json:"decoration"`
	Labour         []Service `json:"labour"`
	Halwai         []Service `json:"halwai"`
	Extra          []Service `json:"extra"`
}

// Package is a named bundle of service selections sold at a fixed price.
type Package struct {
	ID       string                      `json:"id"`
	Name     string                      `json:"name"`
	Price    int64                       `json:"price"`
	Services map[string]ServiceSelection `json:"services"`
}

// ServiceSelection captures one chosen service on a booking. Which field is
// meaningful depends on the service kind.
type ServiceSelection struct {
	Enabled bool   `json:"enabled,omitempty"`
	Option  string `json:"option,omitempty"`
	Count   int    `json:"count,omitempty"`
}
