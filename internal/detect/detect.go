// Package detect implements the Monte Carlo naive-Bayes classifier that
// turns accumulated text into a ranked list of candidate languages.
package detect

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/caiatext/langident/internal/ngram"
	"github.com/caiatext/langident/internal/normalize"
	"github.com/caiatext/langident/internal/profile"
)

const (
	AlphaDefault     = 0.5
	AlphaWidth       = 0.05
	IterationLimit   = 1000
	ProbThreshold    = 0.1
	ConvThreshold    = 0.99999
	BaseFreq         = 10000.0
	NTrial           = 7
	UnknownLanguage  = "unknown"
)

// state is the Detector's lifecycle position. A Detector can be reused
// across texts to avoid reallocating its buffer; Clear resets it to
// fresh rather than requiring a new Detector per text.
type state int

const (
	stateFresh state = iota
	stateAppended
	stateDetected
)

// Candidate is one ranked classification result.
type Candidate struct {
	Lang string
	Prob float64
}

// Detector classifies accumulated text against a shared ProbabilityIndex.
// A Detector is not safe for concurrent use, but many Detectors may share
// the same *profile.ProbabilityIndex concurrently since it is never
// mutated after it is built.
type Detector struct {
	index *profile.ProbabilityIndex
	buf   *normalize.Buffer

	alpha      float64
	alphaWidth float64
	nTrial     int
	maxIter    int
	seed       *int64
	priorMap   []float64

	st     state
	result []Candidate
}

// Option configures a Detector at construction time.
type Option func(*Detector)

// WithAlpha overrides the smoothing prior's mean (default AlphaDefault).
func WithAlpha(alpha float64) Option {
	return func(d *Detector) { d.alpha = alpha }
}

// WithAlphaWidth overrides the Gaussian jitter applied to alpha once per
// trial (default AlphaWidth).
func WithAlphaWidth(width float64) Option {
	return func(d *Detector) { d.alphaWidth = width }
}

// WithTrials overrides the number of Monte Carlo trials averaged together
// (default NTrial).
func WithTrials(n int) Option {
	return func(d *Detector) { d.nTrial = n }
}

// WithMaxTextLength overrides the accumulation buffer's bound.
func WithMaxTextLength(maxLen int) Option {
	return func(d *Detector) { d.buf.SetMaxLength(maxLen) }
}

// WithSeed pins the n-gram sampling RNG to a fixed seed, making Detect
// deterministic. Without it each Detect call draws fresh entropy.
func WithSeed(seed int64) Option {
	return func(d *Detector) { d.seed = &seed }
}

// WithPriors seeds each trial's starting probability vector instead of
// the uniform 1/N default. Keys that are not index languages are
// ignored; missing languages default to 0. New normalizes the priors to
// sum to 1 and rejects a negative entry, or priors with no positive
// entry, with InitParamError.
func WithPriors(langToProb map[string]float64) Option {
	return func(d *Detector) {
		d.priorMap = make([]float64, d.index.LangCount())
		for i, lang := range d.index.Languages() {
			d.priorMap[i] = langToProb[lang]
		}
	}
}

// New builds a Detector bound to idx. idx must contain at least one
// language; otherwise New returns InitParamError.
func New(idx *profile.ProbabilityIndex, opts ...Option) (*Detector, error) {
	if idx == nil || idx.LangCount() == 0 {
		return nil, &InitParamError{Reason: "probability index has no languages"}
	}
	d := &Detector{
		index:      idx,
		buf:        normalize.NewBuffer(normalize.DefaultMaxTextLength),
		alpha:      AlphaDefault,
		alphaWidth: AlphaWidth,
		nTrial:     NTrial,
		maxIter:    IterationLimit,
		st:         stateFresh,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.alpha < 0 {
		return nil, &InitParamError{Reason: "alpha must be non-negative"}
	}
	if d.nTrial <= 0 {
		return nil, &InitParamError{Reason: "trial count must be positive"}
	}
	if d.priorMap != nil {
		var sum float64
		for _, p := range d.priorMap {
			if p < 0 {
				return nil, &InitParamError{Reason: "prior probabilities must be non-negative"}
			}
			sum += p
		}
		if sum <= 0 {
			return nil, &InitParamError{Reason: "priors need at least one positive entry"}
		}
		for i := range d.priorMap {
			d.priorMap[i] /= sum
		}
	}
	return d, nil
}

// Append feeds more text into the detector's accumulation buffer. It may
// be called repeatedly before Detect; state moves FRESH -> APPENDED, and
// an Append after Detect drops the cached result.
func (d *Detector) Append(text string) {
	d.buf.Append(text)
	d.result = nil
	d.st = stateAppended
}

// Clear discards accumulated text and any cached result, returning the
// Detector to its FRESH state for reuse.
func (d *Detector) Clear() {
	d.buf.Reset()
	d.result = nil
	d.st = stateFresh
}

// extractFeatures walks the buffer through the n-gram window, keeping
// only grams the probability index actually has an entry for. Grams
// absent from every profile carry no signal and would only dilute the
// Monte Carlo sampling pool.
func (d *Detector) extractFeatures() []string {
	d.buf.CleaningText()
	ext := ngram.NewExtractor()
	var features []string
	for _, r := range d.buf.Runes() {
		ext.AddChar(r)
		for n := 1; n <= 3; n++ {
			gram, ok := ext.Get(n)
			if !ok {
				continue
			}
			if _, found := d.index.Lookup(gram); found {
				features = append(features, gram)
			}
		}
	}
	return features
}

// Detect classifies the accumulated text, caching the ranked result until
// the next Append or Clear. Calling Detect again without an intervening
// Append returns the cached result rather than re-running the trials.
func (d *Detector) Detect() ([]Candidate, error) {
	if d.st == stateDetected {
		return d.result, nil
	}
	if d.buf.Len() == 0 {
		return nil, &CantDetectError{Reason: "no text has been appended"}
	}

	features := d.extractFeatures()
	if len(features) == 0 {
		return nil, &CantDetectError{Reason: "no features in text"}
	}

	langCount := d.index.LangCount()
	langProb := make([]float64, langCount)

	// A single generator draws both the alpha jitter and the n-gram
	// sample index, so a fixed seed reproduces every draw bit-for-bit.
	var rng *rand.Rand
	if d.seed != nil {
		rng = rand.New(rand.NewSource(*d.seed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for t := 0; t < d.nTrial; t++ {
		prob := d.initProbability(langCount)
		alpha := d.alpha + rng.NormFloat64()*d.alphaWidth

		for i := 0; ; i++ {
			gram := features[rng.Intn(len(features))]
			d.updateLangProb(prob, gram, alpha)
			if i%5 == 0 {
				if d.normalizeProb(prob) > ConvThreshold || i >= d.maxIter {
					break
				}
			}
		}
		for j := range langProb {
			langProb[j] += prob[j] / float64(d.nTrial)
		}
	}

	d.result = d.rank(langProb)
	d.st = stateDetected
	return d.result, nil
}

func (d *Detector) initProbability(langCount int) []float64 {
	prob := make([]float64, langCount)
	if d.priorMap != nil {
		copy(prob, d.priorMap)
		return prob
	}
	uniform := 1.0 / float64(langCount)
	for i := range prob {
		prob[i] = uniform
	}
	return prob
}

func (d *Detector) updateLangProb(prob []float64, gram string, alpha float64) {
	vec, ok := d.index.Lookup(gram)
	if !ok {
		return
	}
	weight := alpha / BaseFreq
	for i := range prob {
		prob[i] *= weight + vec[i]
	}
}

func (d *Detector) normalizeProb(prob []float64) float64 {
	var sum float64
	for _, p := range prob {
		sum += p
	}
	if sum == 0 {
		return 0
	}
	var maxP float64
	for i, p := range prob {
		p /= sum
		prob[i] = p
		if p > maxP {
			maxP = p
		}
	}
	return maxP
}

func (d *Detector) rank(langProb []float64) []Candidate {
	langs := d.index.Languages()
	var out []Candidate
	for i, p := range langProb {
		if p > ProbThreshold {
			out = append(out, Candidate{Lang: langs[i], Prob: p})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Prob > out[j].Prob })
	return out
}

// BestLang returns the top candidate's language, or UnknownLanguage if
// Detect produced no candidate above ProbThreshold.
func BestLang(candidates []Candidate) string {
	if len(candidates) == 0 {
		return UnknownLanguage
	}
	return candidates[0].Lang
}

// ConfidenceGap reports the margin between the top two candidates, used
// by callers deciding whether a result needs human review.
func ConfidenceGap(candidates []Candidate) float64 {
	if len(candidates) < 2 {
		return math.Inf(1)
	}
	return candidates[0].Prob - candidates[1].Prob
}
