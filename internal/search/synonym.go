package search

// Synonyms maps normalized job title terms to equivalent phrasings found in
// market data.
var Synonyms = map[string][]string{
	"swe":          {"software engineer"},
	"sde":          {"software engineer", "software developer"},
	"developer":    {"engineer"},
	"dev":          {"developer", "engineer"},
	"frontend":     {"front end", "ui"},
	"backend":      {"back end", "server side"},
	"full stack":   {"fullstack"},
	"devops":       {"site reliability", "platform engineer"},
	"sre":          {"site reliability engineer", "devops engineer"},
	"ml engineer":  {"machine learning engineer"},
	"data analyst": {"business analyst", "data scientist"},
	"pm":           {"product manager", "project manager"},
	"qa":           {"quality assurance", "test engineer"},
}

// seniorityWords are dropped to find the core role of a title.
var seniorityWords = map[string]struct{}{
	"senior": {}, "sr": {}, "junior": {}, "jr": {}, "lead": {},
	"principal": {}, "staff": {}, "chief": {}, "head": {}, "entry": {}, "level": {},
}

func GetSynonyms(term string) []string {
	if term == "" {
		return []string{}
	}
	if v, ok := Synonyms[term]; ok {
		out := make([]string, 0, len(v))
		out = append(out, v...)
		return out
	}
	return []string{}
}
