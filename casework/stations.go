package casework

// Station is a police station that registers cases and prisoners
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stations are the seven stations feeding the office, in display order
var Stations = []Station{
	{ID: "station-1", Name: "Jal Meda"},
	{ID: "station-2", Name: "Arat Kilo"},
	{ID: "station-3", Name: "Piassa"},
	{ID: "station-4", Name: "Ras Desta"},
	{ID: "station-5", Name: "Atkilt Tera"},
	{ID: "station-6", Name: "Memrya"},
	{ID: "station-7", Name: "Kebena"},
}

// StationName resolves a station id, falling back to the id itself
func StationName(id string) string {
	for _, s := range Stations {
		if s.ID == id {
			return s.Name
		}
	}
	return id
}
