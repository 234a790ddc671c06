package privacy

// Curated lexical data used by the name and address heuristics and by
// the context validator. Built once at package init and never mutated.

var namePrefixes = toSet([]string{
	"mr", "mrs", "ms", "miss", "dr", "prof", "rev",
	"hon", "sir", "lord", "lady", "capt", "col", "gen",
	"lt", "sgt", "cpl", "pvt", "adm", "cmdr", "maj",
})

var nameSuffixes = toSet([]string{
	"jr", "sr", "ii", "iii", "iv", "v", "esq", "md", "phd",
	"dds", "jd", "cpa", "rn", "dvm", "do", "od", "pharmd",
})

var commonFirstNames = toSet([]string{
	"james", "john", "robert", "michael", "william", "david",
	"richard", "joseph", "thomas", "charles", "christopher", "daniel",
	"matthew", "anthony", "mark", "donald", "steven", "paul",
	"andrew", "joshua", "kenneth", "kevin", "brian", "george",
	"edward", "ronald", "timothy", "jason", "jeffrey", "ryan",
	"mary", "patricia", "jennifer", "linda", "barbara", "elizabeth",
	"susan", "jessica", "sarah", "karen", "nancy", "lisa",
	"betty", "margaret", "sandra", "ashley", "kimberly", "emily",
	"donna", "michelle", "dorothy", "carol", "amanda", "melissa",
	"deborah", "stephanie", "rebecca", "sharon", "laura", "cynthia",
	"kathleen", "amy", "angela", "shirley", "anna", "brenda",
	"pamela", "emma", "nicole", "helen", "samantha", "katherine",
})

var streetTypes = []string{
	"street", "st", "avenue", "ave", "road", "rd", "boulevard",
	"blvd", "lane", "ln", "drive", "dr", "court", "ct", "circle",
	"cir", "way", "place", "pl", "terrace", "ter", "parkway", "pkwy",
	"highway", "hwy", "trail", "path", "alley", "walk", "plaza",
	"square", "loop", "crescent", "creek", "crossing", "bend",
}

// Keywords inspected by the context validator. Positive name keywords
// are informative only; the negative list vetoes a candidate.
var nameContextPositive = []string{
	"name", "called", "contact", "from", "by", "to",
	"dear", "sincerely", "regards", "attn", "attention",
}

var nameContextNegative = []string{
	"file", "folder", "document", "system", "server",
	"application", "program", "code", "variable",
}

var addressContextKeywords = []string{
	"address", "located", "live", "office", "building",
	"suite", "floor", "unit", "apt", "apartment",
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
