package pantry

import "pantry-finder/internal/models"

// Sample returns a built-in pantry dataset used for seeding and demos
func Sample() []models.Pantry {
	return []models.Pantry{
		{Name: "St. Mary's Food Pantry", Address: "440 Grand St, New York, NY 10002", Latitude: 40.7160, Longitude: -73.9845},
		{Name: "Bowery Mission Pantry", Address: "227 Bowery, New York, NY 10002", Latitude: 40.7224, Longitude: -73.9930},
		{Name: "Holy Apostles Soup Kitchen", Address: "296 9th Ave, New York, NY 10001", Latitude: 40.7471, Longitude: -74.0009},
		{Name: "West Side Campaign Against Hunger", Address: "263 W 86th St, New York, NY 10024", Latitude: 40.7886, Longitude: -73.9765},
		{Name: "Food Bank For New York City", Address: "2554 8th Ave, New York, NY 10039", Latitude: 40.8273, Longitude: -73.9436},
		{Name: "Part of the Solution (POTS)", Address: "2759 Webster Ave, Bronx, NY 10458", Latitude: 40.8662, Longitude: -73.8891},
		{Name: "St. John's Bread and Life", Address: "795 Lexington Ave, Brooklyn, NY 11221", Latitude: 40.6929, Longitude: -73.9274},
		{Name: "CHiPS Park Slope Christian Help", Address: "200 4th Ave, Brooklyn, NY 11217", Latitude: 40.6789, Longitude: -73.9812},
		{Name: "River Fund Food Pantry", Address: "89-11 Lefferts Blvd, Richmond Hill, NY 11418", Latitude: 40.6925, Longitude: -73.8312},
		{Name: "Long Island Council of Churches Pantry", Address: "1644 Denton Green, Hempstead, NY 11550", Latitude: 40.7062, Longitude: -73.6187},
		{Name: "Community Food Bank of New Jersey", Address: "31 Evans Terminal, Hillside, NJ 07205", Latitude: 40.6953, Longitude: -74.2107},
		{Name: "St. Joseph Social Service Center", Address: "118 Division St, Elizabeth, NJ 07201", Latitude: 40.6639, Longitude: -74.2107},
	}
}
