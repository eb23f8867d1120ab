package db

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	NoProjection = bson.M{}
	NoSort       = []string{}
	NoSkip       = 0
	NoLimit      = 0
)

// Q holds all information necessary to execute a query
type Q struct {
	filter     any
	projection any
	sort       []string
	skip       int
	limit      int
	maxTime    time.Duration
}

// Query creates a db.Q for the given MongoDB query. The filter
// can be a struct, bson.D, bson.M, nil, etc.
func Query(filter any) Q {
	return Q{filter: filter}
}

func (q Q) Filter(filter any) Q {
	q.filter = filter
	return q
}

func (q Q) Project(projection any) Q {
	q.projection = projection
	return q
}

// Sort takes field names, with a leading "-" for descending order.
func (q Q) Sort(sort []string) Q {
	q.sort = sort
	return q
}

func (q Q) Skip(skip int) Q {
	q.skip = skip
	return q
}

func (q Q) Limit(limit int) Q {
	q.limit = limit
	return q
}

func (q Q) MaxTime(duration time.Duration) Q {
	q.maxTime = duration
	return q
}

func (q Q) findOptions() *options.FindOptions {
	opts := options.Find()
	if q.projection != nil {
		opts.SetProjection(q.projection)
	}
	if len(q.sort) > 0 {
		opts.SetSort(sortDocument(q.sort))
	}
	if q.skip > 0 {
		opts.SetSkip(int64(q.skip))
	}
	if q.limit > 0 {
		opts.SetLimit(int64(q.limit))
	}
	return opts
}

func (q Q) findOneOptions() *options.FindOneOptions {
	opts := options.FindOne()
	if q.projection != nil {
		opts.SetProjection(q.projection)
	}
	if len(q.sort) > 0 {
		opts.SetSort(sortDocument(q.sort))
	}
	if q.skip > 0 {
		opts.SetSkip(int64(q.skip))
	}
	return opts
}

func (q Q) filterDocument() any {
	if q.filter == nil {
		return bson.M{}
	}
	return q.filter
}

func sortDocument(fields []string) bson.D {
	sort := bson.D{}
	for _, field := range fields {
		if strings.HasPrefix(field, "-") {
			sort = append(sort, bson.E{Key: strings.TrimPrefix(field, "-"), Value: -1})
			continue
		}
		sort = append(sort, bson.E{Key: field, Value: 1})
	}
	return sort
}
