package vendorRepo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CandidateFilter narrows a candidate query. Zero values disable a criterion.
type CandidateFilter struct {
	// Tags keeps vendors carrying at least one of these tag titles.
	Tags []string
	// IDs keeps only these vendor ids.
	IDs []string
	// Text is matched case-insensitively as a literal against the title or any tag title.
	Text string
	// CateringOnly keeps vendors that offer catering.
	CateringOnly bool
	// MinRating keeps vendors rated at least this much.
	MinRating float64
}

// match renders the filter as a $match document. Criteria are ANDed.
func (f CandidateFilter) match() bson.M {
	var and bson.A
	if f.Text != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Text), Options: "i"}
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"title": re},
			bson.M{"tags.title": re},
		}})
	}
	if len(f.Tags) > 0 {
		and = append(and, bson.M{"tags.title": bson.M{"$in": f.Tags}})
	}
	if f.IDs != nil {
		and = append(and, bson.M{"id": bson.M{"$in": f.IDs}})
	}
	if f.CateringOnly {
		and = append(and, bson.M{"isCatering": true})
	}
	if f.MinRating > 0 {
		and = append(and, bson.M{"rating": bson.M{"$gte": f.MinRating}})
	}
	if len(and) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": and}
}
