package models

// ServerStats partitions the current servers by status. ready servers are
// counted as shippable and inactive servers as passive; field servers only
// contribute to Total.
type ServerStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Transit   int `json:"transit"`
	Setup     int `json:"setup"`
	Passive   int `json:"passive"`
	Shippable int `json:"shippable"`
}

// Count adds one server with the given status.
func (s *ServerStats) Count(status ServerStatus) {
	s.Total++
	switch status {
	case StatusActive:
		s.Active++
	case StatusTransit:
		s.Transit++
	case StatusSetup:
		s.Setup++
	case StatusPassive, StatusInactive:
		s.Passive++
	case StatusShippable, StatusReady:
		s.Shippable++
	}
}
