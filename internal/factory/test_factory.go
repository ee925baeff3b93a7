package factory

import (
	"time"

	"github.com/mcoot/wordgrid/internal/dependencies/mocks"
	"github.com/mcoot/wordgrid/internal/services/definition"
	"github.com/mcoot/wordgrid/internal/storage/memory"
	"github.com/mcoot/wordgrid/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDs   *mocks.MockIDs

	// Definitions backs the definition lookup; words missing from it are
	// not real words
	Definitions map[string]string
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDs := mocks.NewMockIDs()

	definitions := make(map[string]string, len(testDefinitions))
	for word, def := range testDefinitions {
		definitions[word] = def
	}

	app := newWithDependencies(store, mockClock, mockIDs, definition.Static(definitions), testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockIDs:     mockIDs,
		Definitions: definitions,
	}
}

// LoadTestLexicon loads a small lexicon for testing. It includes entries the
// definition lookup rejects ("aah", "tis") and two-letter words that the
// lexicon drops on load.
func (t *TestApp) LoadTestLexicon() error {
	words := []string{
		// 2-letter words
		"at", "be", "he", "it", "me", "so", "to", "up",
		// 3-letter words
		"aah", "ace", "act", "ale", "ant", "ape", "arc", "art", "ash", "ate",
		"bat", "cat", "eat", "elm", "ham", "hat", "hem", "her", "hop", "lap",
		"let", "man", "map", "mat", "opt", "pal", "pat", "pea", "pet", "pot",
		"rat", "sat", "sea", "set", "sip", "sop", "spa", "tab", "tap", "tar",
		"tea", "ten", "tis", "toe", "top",
		// 4-letter words
		"beat", "heal", "help", "helm", "hope", "late", "leap", "meal", "meat",
		"opts", "pale", "past", "peat", "pots", "seat", "spot", "stop", "tale",
		"team", "tops",
		// 5-letter words
		"heart", "helps", "plate", "steam", "stone", "teams",
	}
	return t.LexiconService.LoadWords(words)
}

// testDefinitions are the words the test definition lookup confirms
var testDefinitions = map[string]string{
	"ace":   "a playing card with a single spot",
	"act":   "a thing done",
	"ale":   "a type of beer",
	"ant":   "a small insect",
	"ape":   "a large primate",
	"arc":   "part of a curve",
	"art":   "creative expression",
	"ash":   "residue of fire",
	"ate":   "past tense of eat",
	"bat":   "a flying mammal",
	"cat":   "a small domesticated feline",
	"eat":   "to consume food",
	"elm":   "a deciduous tree",
	"ham":   "cured pork",
	"hat":   "a head covering",
	"hem":   "the edge of cloth",
	"her":   "that woman",
	"hop":   "to jump on one foot",
	"lap":   "the upper legs of a seated person",
	"let":   "to allow",
	"man":   "an adult male human",
	"map":   "a diagram of an area",
	"mat":   "a floor covering",
	"opt":   "to choose",
	"pal":   "a friend",
	"pat":   "to tap gently",
	"pea":   "a round green seed",
	"pet":   "a tame animal",
	"pot":   "a cooking vessel",
	"rat":   "a rodent",
	"sat":   "past tense of sit",
	"sea":   "a large body of salt water",
	"set":   "to put in place",
	"sip":   "to drink in small amounts",
	"sop":   "a concession",
	"spa":   "a health resort",
	"tab":   "a small flap",
	"tap":   "a valve for liquid",
	"tar":   "a dark viscous substance",
	"tea":   "a hot drink",
	"ten":   "the number after nine",
	"toe":   "a digit of the foot",
	"top":   "the highest part",
	"tops":  "plural of top",
	"beat":  "to strike repeatedly",
	"heal":  "to make healthy",
	"help":  "to assist",
	"helm":  "a ship's wheel",
	"hope":  "a feeling of expectation",
	"late":  "after the expected time",
	"leap":  "to jump",
	"meal":  "food eaten at one time",
	"meat":  "animal flesh as food",
	"opts":  "chooses",
	"pale":  "light in colour",
	"past":  "gone by in time",
	"peat":  "partly decayed vegetation",
	"pots":  "cooking vessels",
	"seat":  "a thing to sit on",
	"spot":  "a small mark",
	"stop":  "to cease moving",
	"tale":  "a story",
	"team":  "a group working together",
	"heart": "the organ that pumps blood",
	"helps": "assists",
	"plate": "a flat dish",
	"steam": "water vapour",
	"stone": "hard mineral matter",
	"teams": "groups working together",
}
