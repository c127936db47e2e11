package geofy

import "sort"

// LandmarkEntry is one (landmark, country) pair from the flattened
// zero-shot vocabulary.
type LandmarkEntry struct {
	Landmark string
	Country  string
}

// DefaultLandmarks maps countries to globally recognizable landmarks.
// Labels are unique across the whole table; a country may carry many.
var DefaultLandmarks = map[string][]string{
	"France": {
		"Eiffel Tower", "Louvre Museum", "Arc de Triomphe", "Notre-Dame de Paris",
		"Palace of Versailles", "Mont Saint-Michel", "Sacre-Coeur Basilica", "Pont du Gard",
	},
	"Italy": {
		"Colosseum", "Leaning Tower of Pisa", "Trevi Fountain", "Milan Cathedral",
		"Rialto Bridge", "St. Mark's Basilica", "Pompeii ruins", "Florence Cathedral",
	},
	"Spain": {
		"Sagrada Familia", "Park Guell", "Alhambra", "Plaza de Espana in Seville",
		"Guggenheim Museum Bilbao", "Royal Palace of Madrid", "La Concha beach",
	},
	"United Kingdom": {
		"Big Ben", "Tower Bridge", "Buckingham Palace", "Stonehenge",
		"London Eye", "Edinburgh Castle", "Westminster Abbey",
	},
	"Germany": {
		"Brandenburg Gate", "Neuschwanstein Castle", "Cologne Cathedral",
		"Reichstag building", "Berlin Wall East Side Gallery",
	},
	"Greece": {
		"Acropolis of Athens", "Parthenon", "Santorini blue domes",
		"Meteora monasteries", "Temple of Poseidon at Sounion",
	},
	"Portugal": {
		"Belem Tower", "Pena Palace", "Jeronimos Monastery", "Dom Luis I Bridge",
	},
	"Netherlands": {
		"Amsterdam canals", "Kinderdijk windmills", "Rijksmuseum", "Keukenhof tulip gardens",
	},
	"Belgium": {
		"Grand Place in Brussels", "Atomium", "Bruges canals", "Manneken Pis",
	},
	"Switzerland": {
		"Matterhorn", "Chapel Bridge in Lucerne", "Chillon Castle", "Jungfraujoch",
	},
	"Austria": {
		"Schonbrunn Palace", "Hallstatt village", "Hofburg Palace", "Salzburg fortress",
	},
	"Czech Republic": {
		"Charles Bridge", "Prague Castle", "Old Town Square astronomical clock",
	},
	"Hungary": {
		"Hungarian Parliament Building", "Fisherman's Bastion", "Szechenyi Chain Bridge",
	},
	"Poland": {
		"Wawel Castle", "Krakow main square", "Malbork Castle",
	},
	"Russia": {
		"Saint Basil's Cathedral", "Red Square", "Hermitage Museum", "Peterhof Palace",
	},
	"Turkey": {
		"Hagia Sophia", "Blue Mosque", "Cappadocia hot air balloons", "Pamukkale terraces",
	},
	"Ireland": {
		"Cliffs of Moher", "Ring of Kerry", "Dublin Castle",
	},
	"Norway": {
		"Geirangerfjord", "Preikestolen pulpit rock", "Bryggen wharf in Bergen",
	},
	"Sweden": {
		"Gamla Stan in Stockholm", "Vasa Museum", "Ice Hotel in Jukkasjarvi",
	},
	"Denmark": {
		"Little Mermaid statue", "Nyhavn harbor", "Tivoli Gardens",
	},
	"Iceland": {
		"Blue Lagoon", "Hallgrimskirkja church", "Gullfoss waterfall",
	},
	"United States": {
		"Statue of Liberty", "Golden Gate Bridge", "Grand Canyon", "Mount Rushmore",
		"Times Square", "White House", "Hollywood Sign", "Brooklyn Bridge",
	},
	"Canada": {
		"CN Tower", "Niagara Falls", "Banff National Park", "Old Quebec",
	},
	"Mexico": {
		"Chichen Itza", "Teotihuacan pyramids", "Cancun beaches", "Frida Kahlo Museum",
	},
	"Brazil": {
		"Christ the Redeemer", "Sugarloaf Mountain", "Iguazu Falls", "Copacabana beach",
	},
	"Argentina": {
		"Perito Moreno Glacier", "Obelisco de Buenos Aires", "Caminito street in La Boca",
	},
	"Peru": {
		"Machu Picchu", "Sacsayhuaman fortress", "Rainbow Mountain",
	},
	"Chile": {
		"Torres del Paine", "Easter Island moai statues", "Valparaiso hillside houses",
	},
	"China": {
		"Great Wall of China", "Forbidden City", "Terracotta Army", "Shanghai Bund skyline",
		"Temple of Heaven", "Li River karst mountains",
	},
	"Japan": {
		"Mount Fuji", "Fushimi Inari shrine gates", "Tokyo Tower", "Kinkaku-ji Golden Pavilion",
		"Shibuya Crossing", "Itsukushima floating torii gate",
	},
	"South Korea": {
		"Gyeongbokgung Palace", "N Seoul Tower", "Bukchon Hanok Village",
	},
	"India": {
		"Taj Mahal", "Amber Fort", "Gateway of India", "Golden Temple of Amritsar",
		"Hawa Mahal",
	},
	"Thailand": {
		"Grand Palace in Bangkok", "Wat Arun temple", "Phi Phi Islands", "Big Buddha of Phuket",
	},
	"Vietnam": {
		"Ha Long Bay", "Golden Bridge in Da Nang", "Hoi An lantern streets",
	},
	"Cambodia": {
		"Angkor Wat", "Bayon temple faces",
	},
	"Indonesia": {
		"Borobudur temple", "Tanah Lot temple", "Bali rice terraces", "Mount Bromo",
	},
	"Singapore": {
		"Marina Bay Sands", "Gardens by the Bay supertrees", "Merlion statue",
	},
	"Malaysia": {
		"Petronas Towers", "Batu Caves", "Langkawi Sky Bridge",
	},
	"United Arab Emirates": {
		"Burj Khalifa", "Burj Al Arab", "Sheikh Zayed Grand Mosque", "Palm Jumeirah",
	},
	"Israel": {
		"Western Wall", "Dome of the Rock", "Masada fortress",
	},
	"Jordan": {
		"Petra Treasury", "Wadi Rum desert",
	},
	"Egypt": {
		"Pyramids of Giza", "Great Sphinx", "Karnak Temple", "Abu Simbel temples",
	},
	"Morocco": {
		"Jemaa el-Fnaa square", "Hassan II Mosque", "Chefchaouen blue streets",
		"Ait Benhaddou kasbah",
	},
	"South Africa": {
		"Table Mountain", "Cape of Good Hope", "Boulders Beach penguins",
	},
	"Kenya": {
		"Maasai Mara savanna", "Mount Kenya",
	},
	"Tanzania": {
		"Mount Kilimanjaro", "Ngorongoro Crater", "Zanzibar Stone Town",
	},
	"Australia": {
		"Sydney Opera House", "Sydney Harbour Bridge", "Uluru", "Great Barrier Reef",
		"Twelve Apostles sea stacks",
	},
	"New Zealand": {
		"Milford Sound", "Hobbiton movie set", "Sky Tower in Auckland",
	},
}

// FlattenLandmarks turns a country → landmarks mapping into one ordered
// (landmark, country) list. Countries are visited in sorted order so the
// flattened vocabulary is deterministic across runs.
func FlattenLandmarks(m map[string][]string) []LandmarkEntry {
	countries := make([]string, 0, len(m))
	for c := range m {
		countries = append(countries, c)
	}
	sort.Strings(countries)

	var out []LandmarkEntry
	for _, c := range countries {
		for _, l := range m[c] {
			out = append(out, LandmarkEntry{Landmark: l, Country: c})
		}
	}
	return out
}

// DefaultCountries is the built-in candidate list for zero-shot country
// classification.
var DefaultCountries = []string{
	"France", "Italy", "Spain", "United Kingdom", "Germany", "Greece",
	"Portugal", "Netherlands", "Belgium", "Switzerland", "Austria",
	"Czech Republic", "Hungary", "Poland", "Croatia", "Russia", "Turkey",
	"Ireland", "Norway", "Sweden", "Denmark", "Finland", "Iceland",
	"United States", "Canada", "Mexico", "Cuba", "Brazil", "Argentina",
	"Peru", "Chile", "Colombia", "China", "Japan", "South Korea", "India",
	"Thailand", "Vietnam", "Cambodia", "Indonesia", "Philippines",
	"Singapore", "Malaysia", "Sri Lanka", "Nepal", "United Arab Emirates",
	"Israel", "Jordan", "Saudi Arabia", "Egypt", "Morocco", "Tunisia",
	"South Africa", "Kenya", "Tanzania", "Australia", "New Zealand",
}

// DefaultContinents is the candidate list for coarse continent-first
// classification.
var DefaultContinents = []string{
	"Europe", "Asia", "Africa", "North America", "South America", "Oceania",
}

// countryContinent assigns each built-in country to a continent for
// continent-prefiltered classification.
var countryContinent = map[string]string{
	"France": "Europe", "Italy": "Europe", "Spain": "Europe",
	"United Kingdom": "Europe", "Germany": "Europe", "Greece": "Europe",
	"Portugal": "Europe", "Netherlands": "Europe", "Belgium": "Europe",
	"Switzerland": "Europe", "Austria": "Europe", "Czech Republic": "Europe",
	"Hungary": "Europe", "Poland": "Europe", "Croatia": "Europe",
	"Russia": "Europe", "Turkey": "Europe", "Ireland": "Europe",
	"Norway": "Europe", "Sweden": "Europe", "Denmark": "Europe",
	"Finland": "Europe", "Iceland": "Europe",
	"United States": "North America", "Canada": "North America",
	"Mexico": "North America", "Cuba": "North America",
	"Brazil": "South America", "Argentina": "South America",
	"Peru": "South America", "Chile": "South America",
	"Colombia": "South America",
	"China": "Asia", "Japan": "Asia", "South Korea": "Asia", "India": "Asia",
	"Thailand": "Asia", "Vietnam": "Asia", "Cambodia": "Asia",
	"Indonesia": "Asia", "Philippines": "Asia", "Singapore": "Asia",
	"Malaysia": "Asia", "Sri Lanka": "Asia", "Nepal": "Asia",
	"United Arab Emirates": "Asia", "Israel": "Asia", "Jordan": "Asia",
	"Saudi Arabia": "Asia",
	"Egypt": "Africa", "Morocco": "Africa", "Tunisia": "Africa",
	"South Africa": "Africa", "Kenya": "Africa", "Tanzania": "Africa",
	"Australia": "Oceania", "New Zealand": "Oceania",
}

// languageCountries maps a detected language code to plausible countries,
// most likely first. Order matters: the OCR detector keeps insertion
// order when no street-sign keyword matches.
var languageCountries = map[string][]string{
	"fr": {"France", "Belgium", "Switzerland", "Canada", "Morocco", "Tunisia", "Algeria"},
	"es": {"Spain", "Mexico", "Argentina", "Colombia", "Peru", "Chile", "Cuba"},
	"it": {"Italy", "Switzerland"},
	"de": {"Germany", "Austria", "Switzerland"},
	"pt": {"Portugal", "Brazil"},
	"nl": {"Netherlands", "Belgium"},
	"el": {"Greece", "Cyprus"},
	"tr": {"Turkey"},
	"ru": {"Russia", "Belarus", "Kazakhstan"},
	"pl": {"Poland"},
	"cs": {"Czech Republic"},
	"hu": {"Hungary"},
	"hr": {"Croatia"},
	"sv": {"Sweden"},
	"no": {"Norway"},
	"da": {"Denmark"},
	"fi": {"Finland"},
	"is": {"Iceland"},
	"ga": {"Ireland"},
	"en": {"United States", "United Kingdom", "Australia", "Canada", "Ireland", "New Zealand"},
	"zh": {"China", "Singapore", "Malaysia"},
	"ja": {"Japan"},
	"ko": {"South Korea"},
	"hi": {"India"},
	"th": {"Thailand"},
	"vi": {"Vietnam"},
	"km": {"Cambodia"},
	"id": {"Indonesia"},
	"ms": {"Malaysia", "Singapore", "Indonesia"},
	"ar": {"Egypt", "Morocco", "United Arab Emirates", "Saudi Arabia", "Jordan", "Tunisia"},
	"he": {"Israel"},
	"sw": {"Kenya", "Tanzania"},
	"ne": {"Nepal"},
	"si": {"Sri Lanka"},
	"tl": {"Philippines"},
}

// countryKeywords lists street-sign vocabulary that pins text to one
// country more specifically than language alone. Matched as lowercase
// substrings of the concatenated OCR text.
var countryKeywords = map[string][]string{
	"France":         {"rue ", "avenue de", "boulevard ", "place de", "mairie", "boulangerie", "gare de"},
	"Spain":          {"calle", "avenida", "plaza mayor", "ayuntamiento", "cerveceria", "estacion"},
	"Italy":          {"via ", "piazza", "corso ", "stazione", "farmacia", "gelateria", "trattoria"},
	"Germany":        {"strasse", "straße", "platz ", "bahnhof", "rathaus", "apotheke", "biergarten"},
	"Portugal":       {"rua ", "praca ", "avenida da liberdade", "pastelaria", "estacao"},
	"Netherlands":    {"straat", "gracht", "centraal station", "fietspad"},
	"United Kingdom": {"high street", "underground", "mind the gap", "borough", "tube station"},
	"United States":  {"broadway", "interstate", "downtown", "main street", "5th avenue"},
	"Russia":         {"улица", "проспект", "площадь", "вокзал"},
	"Greece":         {"οδος", "πλατεια", "ταβερνα"},
	"Turkey":         {"caddesi", "sokak", "meydani", "lokanta"},
	"Japan":          {"丁目", "駅", "通り"},
	"China":          {"路", "街道", "火车站"},
	"South Korea":    {"로 ", "역 ", "시장"},
	"Thailand":       {"ถนน", "ซอย", "ตลาด"},
	"Vietnam":        {"duong ", "pho ", "cho "},
	"Brazil":         {"rua ", "avenida paulista", "rodoviaria", "padaria"},
	"Mexico":         {"zocalo", "mercado", "taqueria", "paseo de la reforma"},
	"Egypt":          {"شارع", "ميدان"},
	"Morocco":        {"شارع", "medina", "souk", "riad "},
	"Israel":         {"רחוב", "שדרות"},
	"India":          {"marg ", "chowk", "bazaar road"},
	"Poland":         {"ulica", "aleja ", "dworzec", "rynek"},
	"Czech Republic": {"ulice", "namesti", "nadrazi"},
	"Hungary":        {"utca", "ter ", "palyaudvar"},
	"Sweden":         {"gatan", "torget", "centralstation"},
	"Norway":         {"gata", "torget", "sentralstasjon"},
	"Denmark":        {"gade", "torv ", "hovedbanegard"},
	"Austria":        {"gasse", "strasse", "hauptbahnhof"},
	"Switzerland":    {"bahnhofstrasse", "gasse", "rue de lausanne"},
}
