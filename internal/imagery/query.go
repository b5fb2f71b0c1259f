package imagery

import (
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"
)

// Role identifies where on the page an image will be used.
type Role string

const (
	RoleHero     Role = "hero"
	RoleAbout    Role = "about"
	RoleService1 Role = "service1"
	RoleService2 Role = "service2"
	RoleService3 Role = "service3"
	RoleGallery  Role = "gallery"
	RoleTeam     Role = "team"
	RoleCTA      Role = "cta"
	RoleBanner   Role = "banner"
)

// QuerySuffix is appended to every search query.
const QuerySuffix = "professional high quality"

// Chooser picks an index in [0, n). Implementations must be safe for concurrent use.
type Chooser interface {
	Choose(n int) int
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func(n int) int

func (f ChooserFunc) Choose(n int) int { return f(n) }

// FirstChooser always picks the first candidate.
var FirstChooser Chooser = ChooserFunc(func(int) int { return 0 })

type randomChooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomChooser returns a uniformly random chooser seeded with seed.
func NewRandomChooser(seed int64) Chooser {
	return &randomChooser{rng: rand.New(rand.NewSource(seed))}
}

func (c *randomChooser) Choose(n int) int {
	if n <= 1 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Intn(n)
}

type keywords struct {
	primary   string
	secondary string
}

type keywordEntry struct {
	match string
	// whole entries only match a complete word or its plural; the rest match
	// the start of a word.
	whole bool
	keywords
}

// keywordTable is ordered; the first entry matching a word of the lowercased
// business type wins.
var keywordTable = []keywordEntry{
	{"dental", false, keywords{"dental clinic", "dentist smile"}},
	{"dentist", false, keywords{"dental clinic", "dentist smile"}},
	{"orthodont", false, keywords{"dental clinic", "orthodontist braces"}},
	{"veterinar", false, keywords{"veterinary clinic", "happy pets"}},
	{"medical", false, keywords{"medical clinic", "doctor patient"}},
	{"clinic", false, keywords{"medical clinic", "healthcare professional"}},
	{"physio", false, keywords{"physiotherapy clinic", "physical therapy"}},
	{"restaurant", false, keywords{"restaurant interior", "gourmet food"}},
	{"cafe", true, keywords{"cozy cafe", "coffee cup"}},
	{"coffee", false, keywords{"coffee shop", "barista coffee"}},
	{"bakery", false, keywords{"artisan bakery", "fresh bread"}},
	{"barber", false, keywords{"barber shop", "men haircut"}},
	{"bar", true, keywords{"cocktail bar", "bartender drinks"}},
	{"lawn", false, keywords{"landscaped garden", "lawn mowing"}},
	{"law", true, keywords{"law office", "lawyer meeting"}},
	{"lawyer", false, keywords{"law office", "lawyer meeting"}},
	{"legal", false, keywords{"law office", "legal documents"}},
	{"account", false, keywords{"accounting office", "financial planning"}},
	{"consult", false, keywords{"business consulting", "team meeting"}},
	{"fitness", false, keywords{"fitness gym", "workout training"}},
	{"gym", true, keywords{"fitness gym", "weight training"}},
	{"yoga", false, keywords{"yoga studio", "meditation"}},
	{"salon", false, keywords{"beauty salon", "hair styling"}},
	{"spa", true, keywords{"luxury spa", "relaxing massage"}},
	{"real estate", false, keywords{"modern house", "real estate agent"}},
	{"construction", false, keywords{"construction site", "building contractor"}},
	{"plumb", false, keywords{"plumber", "plumbing repair"}},
	{"electric", false, keywords{"electrician", "electrical work"}},
	{"landscap", false, keywords{"landscaped garden", "gardener"}},
	{"clean", false, keywords{"cleaning service", "clean home"}},
	{"photo", false, keywords{"photography studio", "photographer camera"}},
	{"tech", false, keywords{"technology office", "software developer"}},
	{"software", false, keywords{"software team", "laptop code"}},
	{"school", false, keywords{"classroom", "students learning"}},
	{"tutor", false, keywords{"tutoring session", "student studying"}},
	{"pet", true, keywords{"pet care", "happy dog"}},
	{"auto", false, keywords{"auto repair shop", "car mechanic"}},
	{"hotel", false, keywords{"boutique hotel", "hotel room"}},
	{"florist", false, keywords{"flower shop", "floral arrangement"}},
}

// rolePhrases holds the candidate phrasings per role. %p is replaced with the
// primary keyword and %s with the secondary one.
var rolePhrases = map[Role][]string{
	RoleHero:     {"%p exterior", "modern %p", "%p interior", "welcoming %p"},
	RoleAbout:    {"%p team", "%s professionals", "friendly %p staff", "%p owner portrait"},
	RoleService1: {"%s service", "%p consultation", "%s close up"},
	RoleService2: {"%p equipment", "%s in action", "%p workspace"},
	RoleService3: {"%s customer", "happy %p client", "%s detail", "%p experience"},
	RoleGallery:  {"%p showcase", "%s portfolio", "%p atmosphere"},
	RoleTeam:     {"%p team portrait", "%s staff", "%p professionals at work"},
	RoleCTA:      {"%p customers", "%s satisfaction", "%p welcome"},
	RoleBanner:   {"%p lifestyle", "%s moment", "%p scene", "%s ambience"},
}

var defaultPhrases = []string{"%p", "%s", "%p business"}

// Builder composes stock photo search queries.
type Builder struct {
	chooser Chooser
}

// NewBuilder returns a builder using chooser for phrase selection. A nil
// chooser falls back to a time seeded random chooser.
func NewBuilder(chooser Chooser) *Builder {
	if chooser == nil {
		chooser = NewRandomChooser(time.Now().UnixNano())
	}
	return &Builder{chooser: chooser}
}

// BuildQuery maps a business type, role and location to a search phrase.
func (b *Builder) BuildQuery(businessType string, role Role, location string) string {
	kw := resolveKeywords(businessType)

	candidates, ok := rolePhrases[role]
	if !ok {
		candidates = defaultPhrases
	}
	idx := b.chooser.Choose(len(candidates))
	if idx < 0 || idx >= len(candidates) {
		idx = 0
	}
	phrase := strings.NewReplacer("%p", kw.primary, "%s", kw.secondary).Replace(candidates[idx])

	parts := []string{strings.TrimSpace(phrase)}
	if loc := strings.TrimSpace(location); loc != "" {
		parts = append(parts, loc)
	}
	parts = append(parts, QuerySuffix)
	return strings.Join(parts, " ")
}

// PrimaryKeyword exposes the primary keyword resolved for a business type.
func PrimaryKeyword(businessType string) string {
	return resolveKeywords(businessType).primary
}

func resolveKeywords(businessType string) keywords {
	words := strings.FieldsFunc(strings.ToLower(businessType), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	joined := " " + strings.Join(words, " ")
	for _, entry := range keywordTable {
		if entry.matches(words, joined) {
			return entry.keywords
		}
	}
	fallback := firstWords(strings.TrimSpace(businessType), 2)
	if fallback == "" {
		fallback = "small business"
	}
	return keywords{primary: fallback, secondary: fallback}
}

func (e keywordEntry) matches(words []string, joined string) bool {
	if strings.Contains(e.match, " ") {
		return strings.Contains(joined, " "+e.match)
	}
	for _, word := range words {
		switch {
		case e.whole && (word == e.match || word == e.match+"s"):
			return true
		case !e.whole && strings.HasPrefix(word, e.match):
			return true
		}
	}
	return false
}

func firstWords(value string, n int) string {
	fields := strings.Fields(value)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
