package generators

// Value pools for fields go-faker has no provider for. Same approach as
// keeping a city list next to the faker-backed fields: the draw stays on
// the injected source so output remains seed-reproducible.

var cityPool = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
	"Austin", "Jacksonville", "Fort Worth", "Columbus", "Charlotte",
	"San Francisco", "Indianapolis", "Seattle", "Denver", "Washington",
	"Boston", "Nashville", "Detroit", "Portland", "Las Vegas",
	"London", "Paris", "Tokyo", "Berlin", "Madrid",
	"Rome", "Amsterdam", "Vienna", "Prague", "Barcelona",
	"Munich", "Milan", "Stockholm", "Copenhagen", "Oslo",
}

var statePool = []string{
	"Alabama", "Arizona", "California", "Colorado", "Florida",
	"Georgia", "Illinois", "Indiana", "Massachusetts", "Michigan",
	"Minnesota", "Missouri", "Nevada", "New Jersey", "New York",
	"North Carolina", "Ohio", "Oregon", "Pennsylvania", "Tennessee",
	"Texas", "Virginia", "Washington", "Wisconsin",
}

var streetPool = []string{
	"Main Street", "Oak Avenue", "Maple Drive", "Cedar Lane",
	"Park Boulevard", "Elm Street", "Washington Avenue", "Lake Road",
	"Hillcrest Drive", "Sunset Boulevard", "River Road", "Church Street",
	"Highland Avenue", "Mill Lane", "Spring Street", "Garden Way",
}

var countryPool = []string{
	"United States", "Canada", "United Kingdom", "Germany", "France",
	"Spain", "Italy", "Netherlands", "Sweden", "Norway",
	"Japan", "Australia", "Brazil", "Mexico", "India",
}

var supplierSuffixPool = []string{
	"Inc.", "LLC", "Group", "Corp.", "Supply Co.", "Trading",
}

var (
	buildingPool = []string{"Building A", "Building B", "Building C"}
	floorPool    = []string{"Floor 1", "Floor 2", "Floor 3", "Floor 4"}
	roomPool     = []string{"Room 101", "Room 102", "Conference Room", "Lobby", "Lab"}
)
