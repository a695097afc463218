package similarity

const (
	sequenceWeight = 0.6
	jaccardWeight  = 0.4

	unknownYearBonus = 0.1
	nearYearBonus    = 0.2
)

// Scores holds the components of a title comparison.
type Scores struct {
	Sequence  float64
	Jaccard   float64
	Year      float64
	Composite float64
}

// Score compares two normalized titles. targetYear is the query's year and
// candidateYear the candidate's; zero means unknown.
func Score(a, b string, isCollection bool, targetYear, candidateYear int) Scores {
	s := Scores{
		Sequence: SequenceRatio(a, b),
		Jaccard:  Jaccard(a, b),
		Year:     YearScore(isCollection, targetYear, candidateYear),
	}
	s.Composite = sequenceWeight*s.Sequence + jaccardWeight*s.Jaccard + s.Year
	return s
}

// YearScore is zero for collections, a small bonus when the target year is
// unknown, and the full bonus when both years are known and at most one apart.
func YearScore(isCollection bool, targetYear, candidateYear int) float64 {
	if isCollection {
		return 0
	}
	if targetYear == 0 {
		return unknownYearBonus
	}
	if candidateYear != 0 && abs(targetYear-candidateYear) <= 1 {
		return nearYearBonus
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
