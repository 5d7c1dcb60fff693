package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/huangsam/riskboard/schema"
)

// unknownLabel is the bucket for absent string fields.
const unknownLabel = "Unknown"

func diseaseOf(r *schema.Record) string {
	if r.DiseaseProtocol == "" {
		return unknownLabel
	}
	return r.DiseaseProtocol
}

func calcTypeOf(r *schema.Record) string {
	if r.CalculationType == "" {
		return unknownLabel
	}
	return r.CalculationType
}

func riskOf(r *schema.Record) schema.RiskRating {
	if r.RiskRating == "" {
		return schema.UnknownRisk
	}
	return r.RiskRating
}

// DiseaseDistribution counts distinct people per disease protocol.
// A person with records under three diseases contributes to three buckets.
func DiseaseDistribution(records []schema.Record) schema.ChartData {
	peoplePerDisease := make(map[string]map[string]struct{})
	t := newTally()
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		disease := diseaseOf(r)
		key := r.PersonKey()
		people, ok := peoplePerDisease[disease]
		if !ok {
			people = make(map[string]struct{})
			peoplePerDisease[disease] = people
			t.add(disease, 0)
		}
		people[key] = struct{}{}
	}
	for _, disease := range t.keys {
		t.counts[disease] = len(peoplePerDisease[disease])
	}
	return t.singleSeries(false)
}

// PeoplePerCondition counts, per condition, how many people carry it in
// their distinct disease set.
func PeoplePerCondition(records []schema.Record) schema.ChartData {
	ps := newProfileSet()
	for i := range records {
		r := &records[i]
		if !r.IsActive || r.MemberID == "" {
			continue
		}
		ps.observe(r)
	}

	t := newTally()
	for _, p := range ps.ordered() {
		for _, condition := range p.Diseases {
			t.add(condition, 1)
		}
	}
	return t.singleSeries(false)
}

// MultipleDiseasesHistogram buckets people by their distinct disease
// count, ascending, with singular/plural labels.
func MultipleDiseasesHistogram(records []schema.Record) schema.ChartData {
	profiles := BuildProfiles(records)

	distribution := make(map[int]int)
	for _, p := range profiles {
		distribution[len(p.Diseases)]++
	}

	counts := make([]int, 0, len(distribution))
	for count := range distribution {
		counts = append(counts, count)
	}
	sort.Ints(counts)

	labels := make([]string, 0, len(counts))
	data := make([]float64, 0, len(counts))
	for _, count := range counts {
		label := fmt.Sprintf("%d Disease", count)
		if count > 1 {
			label += "s"
		}
		labels = append(labels, label)
		data = append(data, float64(distribution[count]))
	}
	return schema.ChartData{
		Labels:          labels,
		Data:            data,
		BackgroundColor: schema.GenerateColors(len(labels), false),
	}
}

// MultipleDiseasesDetailed buckets people holding three or more distinct
// diseases by exact count, capping at "6+ Diseases". The "+" bucket sorts
// as if it were six.
func MultipleDiseasesDetailed(records []schema.Record) schema.ChartData {
	profiles := BuildProfiles(records)

	distribution := newTally()
	for _, p := range profiles {
		count := len(p.Diseases)
		if count < 3 {
			continue
		}
		category := fmt.Sprintf("%d Diseases", count)
		if count >= 6 {
			category = "6+ Diseases"
		}
		distribution.add(category, 1)
	}

	labels := append([]string(nil), distribution.keys...)
	sort.Slice(labels, func(i, j int) bool {
		return detailedBucketOrder(labels[i]) < detailedBucketOrder(labels[j])
	})

	data := make([]float64, 0, len(labels))
	for _, label := range labels {
		data = append(data, float64(distribution.get(label)))
	}
	return schema.ChartData{
		Labels:          labels,
		Data:            data,
		BackgroundColor: schema.GenerateColors(len(labels), false),
	}
}

func detailedBucketOrder(label string) int {
	if strings.Contains(label, "+") {
		return 6
	}
	n := 0
	fmt.Sscanf(label, "%d", &n)
	return n
}

// DiseaseCombinations counts the disease combinations of people with
// three or more distinct diseases. Combination keys list the first three
// diseases alphabetically with a "+ K more" suffix when truncated.
// Returns the top 15 combinations by frequency.
func DiseaseCombinations(records []schema.Record) schema.ChartData {
	profiles := BuildProfiles(records)

	combinations := newTally()
	for _, p := range profiles {
		if len(p.Diseases) < 3 {
			continue
		}
		sorted := append([]string(nil), p.Diseases...)
		sort.Strings(sorted)
		key := strings.Join(sorted[:3], " + ")
		if len(sorted) > 3 {
			key = fmt.Sprintf("%s + %d more", key, len(sorted)-3)
		}
		combinations.add(key, 1)
	}
	return singleSeriesFromPairs(combinations.topN(15), false)
}

// MultipleDiseaseRisk tallies risk ratings among records of people with
// three or more distinct diseases. This is a raw record tally restricted
// to the subgroup, not a per-person count, and unknown ratings are
// dropped from the fixed High/Medium/Low label set.
func MultipleDiseaseRisk(records []schema.Record) schema.ChartData {
	ps := buildProfileSet(records)

	counts := map[schema.RiskRating]int{}
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		p := ps.get(r.PersonKey())
		if p == nil || len(p.Diseases) < 3 {
			continue
		}
		risk := riskOf(r)
		switch risk {
		case schema.HighRisk, schema.MediumRisk, schema.LowRisk:
			counts[risk]++
		}
	}

	labels := make([]string, 0, len(schema.RankedRiskLevels))
	data := make([]float64, 0, len(schema.RankedRiskLevels))
	for _, level := range schema.RankedRiskLevels {
		labels = append(labels, string(level))
		data = append(data, float64(counts[level]))
	}
	return schema.ChartData{
		Labels:          labels,
		Data:            data,
		BackgroundColor: schema.GenerateColors(len(labels), true),
	}
}

// MultipleDiseaseSeverity averages per-person severity scores across
// people sharing a disease count, restricted to people with three or more
// distinct diseases. A person's severity is the High=3/Medium=2/Low=1
// weighted average over all their records; unknown ratings weigh zero but
// still count toward the denominator.
func MultipleDiseaseSeverity(records []schema.Record) schema.ChartData {
	ps := buildProfileSet(records)

	type riskProfile struct {
		high, medium, low, total int
	}
	profiles := make(map[string]*riskProfile)
	order := []string{}
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		key := r.PersonKey()
		p := ps.get(key)
		if p == nil || len(p.Diseases) < 3 {
			continue
		}
		rp, ok := profiles[key]
		if !ok {
			rp = &riskProfile{}
			profiles[key] = rp
			order = append(order, key)
		}
		switch riskOf(r) {
		case schema.HighRisk:
			rp.high++
		case schema.MediumRisk:
			rp.medium++
		case schema.LowRisk:
			rp.low++
		}
		rp.total++
	}

	type bucket struct {
		people int
		sum    float64
	}
	byCount := make(map[int]*bucket)
	for _, key := range order {
		rp := profiles[key]
		score := 0.0
		if rp.total > 0 {
			score = float64(rp.high*3+rp.medium*2+rp.low) / float64(rp.total)
		}
		diseaseCount := len(ps.get(key).Diseases)
		b, ok := byCount[diseaseCount]
		if !ok {
			b = &bucket{}
			byCount[diseaseCount] = b
		}
		b.people++
		b.sum += score
	}

	counts := make([]int, 0, len(byCount))
	for count := range byCount {
		counts = append(counts, count)
	}
	sort.Ints(counts)

	labels := make([]string, 0, len(counts))
	data := make([]float64, 0, len(counts))
	for _, count := range counts {
		b := byCount[count]
		labels = append(labels, fmt.Sprintf("%d Diseases", count))
		data = append(data, b.sum/float64(b.people))
	}
	return schema.ChartData{
		Labels: labels,
		Datasets: []schema.Dataset{{
			Label:           "Average Severity Score",
			Data:            data,
			BackgroundColor: schema.UniformColors("rgba(255, 99, 132, 0.6)", len(data)),
			BorderColor:     "rgba(255, 99, 132, 1)",
			BorderWidth:     2,
			Fill:            false,
		}},
	}
}

// DiseaseCooccurrence counts, for every unordered disease pair, how many
// people carry both in their distinct disease set. Pair keys normalize
// alphabetically so the same pair never splits into two buckets. Returns
// the top 15 pairs.
func DiseaseCooccurrence(records []schema.Record) schema.ChartData {
	profiles := BuildProfiles(records)

	pairs := newTally()
	for _, p := range profiles {
		for i := 0; i < len(p.Diseases); i++ {
			for j := i + 1; j < len(p.Diseases); j++ {
				pairs.add(CooccurrenceKey(p.Diseases[i], p.Diseases[j]), 1)
			}
		}
	}
	return singleSeriesFromPairs(pairs.topN(15), false)
}

// CooccurrenceKey builds the normalized pair key for two diseases,
// identical regardless of argument order.
func CooccurrenceKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + " + " + b
}

// DiseaseSeverity scores each disease by the severity-weighted average of
// its records (High=3, Medium=2, Low=1; unknown ratings weigh zero but
// count toward the denominator).
func DiseaseSeverity(records []schema.Record) schema.ChartData {
	type riskProfile struct {
		high, medium, low, total int
	}
	profiles := make(map[string]*riskProfile)
	order := []string{}
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		disease := diseaseOf(r)
		rp, ok := profiles[disease]
		if !ok {
			rp = &riskProfile{}
			profiles[disease] = rp
			order = append(order, disease)
		}
		switch riskOf(r) {
		case schema.HighRisk:
			rp.high++
		case schema.MediumRisk:
			rp.medium++
		case schema.LowRisk:
			rp.low++
		}
		rp.total++
	}

	data := make([]float64, 0, len(order))
	for _, disease := range order {
		rp := profiles[disease]
		score := 0.0
		if rp.total > 0 {
			score = float64(rp.high*3+rp.medium*2+rp.low) / float64(rp.total)
		}
		data = append(data, score)
	}
	return schema.ChartData{
		Labels: order,
		Datasets: []schema.Dataset{{
			Label:           "Disease Severity Score",
			Data:            data,
			BackgroundColor: schema.GenerateColors(len(order), false),
		}},
	}
}

// ProtocolUsage counts records per disease protocol, returning the top 20
// protocols by frequency.
func ProtocolUsage(records []schema.Record) schema.ChartData {
	t := newTally()
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		t.add(diseaseOf(r), 1)
	}
	return singleSeriesFromPairs(t.topN(20), false)
}

// HighRiskDiabetes narrows to records whose disease name contains
// "diabetes", rating is exactly High Risk, and calculation type contains
// "adherence" (both case-insensitive), counting records per disease.
func HighRiskDiabetes(records []schema.Record) schema.ChartData {
	t := newTally()
	for i := range records {
		r := &records[i]
		if !r.IsActive {
			continue
		}
		disease := diseaseOf(r)
		if !strings.Contains(strings.ToLower(disease), "diabetes") {
			continue
		}
		if riskOf(r) != schema.HighRisk {
			continue
		}
		if !strings.Contains(strings.ToLower(calcTypeOf(r)), "adherence") {
			continue
		}
		t.add(disease, 1)
	}
	return t.singleSeries(false)
}
