package catalog

// Category is a vehicle's market segment.
type Category string

const (
	CategoryEconomy Category = "economique"
	CategorySedan   Category = "berline"
	CategorySUV     Category = "suv"
	CategoryLuxury  Category = "luxe"
)

// Categories lists the closed set in display order.
func Categories() []Category {
	return []Category{CategoryEconomy, CategorySedan, CategorySUV, CategoryLuxury}
}

var categoryLabels = map[Category]string{
	CategoryEconomy: "Économique",
	CategorySedan:   "Berline",
	CategorySUV:     "SUV",
	CategoryLuxury:  "Luxe",
}

// Label returns the display label; unknown categories pass through raw.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Location is an agency pickup point.
type Location string

const (
	LocationAirport     Location = "aeroport"
	LocationDowntown    Location = "centre-ville"
	LocationPortGentil  Location = "port-gentil"
	LocationFranceville Location = "franceville"
)

var locationLabels = map[Location]string{
	LocationAirport:     "Aéroport Léon-Mba",
	LocationDowntown:    "Centre-ville",
	LocationPortGentil:  "Port-Gentil",
	LocationFranceville: "Franceville",
}

// Label returns the display label; unknown locations pass through raw.
func (l Location) Label() string {
	if lbl, ok := locationLabels[l]; ok {
		return lbl
	}
	return string(l)
}

// Vehicle is one fleet entry. The fleet is hard coded and immutable for the
// process lifetime.
type Vehicle struct {
	ID           string   `json:"id"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	PricePerDay  int64    `json:"pricePerDay"`
	Seats        int      `json:"seats"`
	Doors        int      `json:"doors"`
	Transmission string   `json:"transmission"`
	Fuel         string   `json:"fuel"`
	Mileage      int      `json:"mileage"`
	Category     Category `json:"category"`
	Location     Location `json:"location"`
	IsAvailable  bool     `json:"isAvailable"`
	ImageURL     string   `json:"imageUrl"`
	Features     []string `json:"features"`
}

// Fleet returns a fresh copy of the static vehicle list.
func Fleet() []Vehicle {
	out := make([]Vehicle, len(fleet))
	copy(out, fleet)
	return out
}

var fleet = []Vehicle{
	{
		ID: "v1", Brand: "Toyota", Model: "Corolla", Year: 2022,
		PricePerDay: 25000, Seats: 5, Doors: 4,
		Transmission: "Automatique", Fuel: "Essence", Mileage: 15000,
		Category: CategorySedan, Location: LocationDowntown, IsAvailable: true,
		ImageURL: "images/vehicles/toyota-corolla.png",
		Features: []string{"Climatisation", "Bluetooth", "Caméra de recul", "GPS intégré"},
	},
	{
		ID: "v2", Brand: "Hyundai", Model: "Tucson", Year: 2021,
		PricePerDay: 35000, Seats: 5, Doors: 5,
		Transmission: "Automatique", Fuel: "Diesel", Mileage: 22000,
		Category: CategorySUV, Location: LocationAirport, IsAvailable: true,
		ImageURL: "images/vehicles/Hyundai Tucson 2021.png",
		Features: []string{"Toit ouvrant", "Climatisation", "Caméra 360°", "Écran tactile"},
	},
	{
		ID: "v3", Brand: "Mercedes-Benz", Model: "C-Class", Year: 2023,
		PricePerDay: 70000, Seats: 5, Doors: 4,
		Transmission: "Automatique", Fuel: "Essence", Mileage: 9000,
		Category: CategoryLuxury, Location: LocationDowntown, IsAvailable: false,
		ImageURL: "images/vehicles/Mercedes-Benz C-Class 2023.png",
		Features: []string{"Cuir", "Caméra 360°", "GPS", "Bluetooth"},
	},
	{
		ID: "v4", Brand: "Suzuki", Model: "Swift", Year: 2020,
		PricePerDay: 20000, Seats: 4, Doors: 4,
		Transmission: "Manuelle", Fuel: "Essence", Mileage: 32000,
		Category: CategoryEconomy, Location: LocationPortGentil, IsAvailable: true,
		ImageURL: "images/vehicles/Suzuki Swift 2020.png",
		Features: []string{"Climatisation", "USB", "Économique"},
	},
}
