// Package catalog holds the static reading-topic and writing-theme tables
// and the rotation bookkeeping that keeps them from repeating.
package catalog

// Entry is one (category, topic) pair of a catalog table.
type Entry struct {
	Category string
	Topic    string
}

// String renders the entry as "Category: Topic".
func (e Entry) String() string {
	return e.Category + ": " + e.Topic
}

// Subtype prefixes carried by writing themes.
const (
	IndependentPrefix = "Independent: "
	IntegratedPrefix  = "Integrated: "
)

type group struct {
	category string
	topics   []string
}

var readingTable = []group{
	{"Biology", []string{"Evolutionary Biology", "Ecosystems", "Cell Biology", "Genetics", "Microbiology"}},
	{"Environmental Science", []string{"Climate Change", "Conservation", "Sustainable Development", "Biodiversity", "Natural Resources"}},
	{"Astronomy", []string{"Stellar Evolution", "Planetary Science", "Cosmology", "Space Exploration", "Astrophysics"}},
	{"Geology", []string{"Plate Tectonics", "Mineralogy", "Natural Disasters", "Earth's History", "Geological Formations"}},
	{"Anthropology", []string{"Cultural Anthropology", "Archaeological Discoveries", "Human Evolution", "Indigenous Cultures", "Social Structures"}},
	{"Psychology", []string{"Cognitive Development", "Behavioral Psychology", "Memory Formation", "Social Psychology", "Psychological Disorders"}},
	{"Economics", []string{"Economic Systems", "Market Structures", "International Trade", "Economic Development", "Monetary Policy"}},
	{"Sociology", []string{"Social Movements", "Urbanization", "Social Institutions", "Demographic Change", "Cultural Norms"}},
	{"History", []string{"Ancient Civilizations", "Industrial Revolution", "Social Movements", "Cultural Exchange", "Political Systems"}},
	{"Arts", []string{"Art History", "Artistic Movements", "Architecture", "Music History", "Cultural Expression"}},
	{"Philosophy", []string{"Ethics", "Logic", "Metaphysics", "Political Philosophy", "Eastern Philosophy"}},
	{"Technology", []string{"Artificial Intelligence", "Biotechnology", "Information Technology", "Renewable Energy", "Transportation Technology"}},
	{"Agriculture", []string{"Sustainable Farming", "Food Systems", "Agricultural History", "Crop Development", "Farming Technologies"}},
}

var independentTable = []group{
	{"Education", []string{
		"Role of technology in education",
		"Traditional vs. modern teaching methods",
		"Value of arts education",
		"Learning from mistakes vs. learning from success",
		"Practical skills vs. theoretical knowledge",
	}},
	{"Society", []string{
		"Urban vs. rural living",
		"Effects of social media",
		"Cultural preservation vs. adaptation",
		"Individual rights vs. community needs",
		"Generational differences",
	}},
	{"Career", []string{
		"Job satisfaction vs. high salary",
		"Working from home vs. office",
		"Career change vs. job stability",
		"Entrepreneurship vs. employment",
		"Specializing vs. generalist knowledge",
	}},
	{"Environment", []string{
		"Environmental protection vs. economic development",
		"Individual vs. governmental responsibility for climate",
		"Technology's impact on environment",
		"Traditional vs. alternative energy",
		"Local vs. global environmental solutions",
	}},
	{"Lifestyle", []string{
		"Travel experiences vs. material possessions",
		"Traditional vs. non-traditional lifestyle choices",
		"Planning vs. spontaneity",
		"Independence vs. interdependence",
		"Work-life balance",
	}},
}

var integratedTable = []group{
	{"Science", []string{
		"Scientific theory controversy",
		"New research findings",
		"Environmental phenomenon",
		"Medical discovery",
		"Technological innovation",
	}},
	{"Social Science", []string{
		"Historical interpretation",
		"Economic policy",
		"Psychological theory",
		"Educational approach",
		"Urban development plan",
	}},
	{"Academic", []string{
		"Research methodology",
		"Academic theory critique",
		"Campus policy change",
		"Student learning approach",
		"Academic resource allocation",
	}},
}

func flatten(table []group) []Entry {
	var out []Entry
	for _, g := range table {
		for _, t := range g.topics {
			out = append(out, Entry{Category: g.category, Topic: t})
		}
	}
	return out
}

// ReadingTopics returns every reading topic in table order.
func ReadingTopics() []Entry {
	return flatten(readingTable)
}

// WritingThemes returns the integrated or independent writing themes in
// table order.
func WritingThemes(integrated bool) []Entry {
	if integrated {
		return flatten(integratedTable)
	}
	return flatten(independentTable)
}

// readingSpace is the ordered, de-duplicated list of "Category: Topic"
// strings that reading selection draws from.
func readingSpace() []string {
	return uniqueStrings(ReadingTopics(), "")
}

// writingSpace is the same for one writing subtype, with the subtype
// prefix already applied.
func writingSpace(integrated bool) []string {
	return uniqueStrings(WritingThemes(integrated), subtypePrefix(integrated))
}

func subtypePrefix(integrated bool) string {
	if integrated {
		return IntegratedPrefix
	}
	return IndependentPrefix
}

func uniqueStrings(entries []Entry, prefix string) []string {
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		s := prefix + e.String()
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
