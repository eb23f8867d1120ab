package db

import (
	adb "github.com/mongodb/anser/db"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrConcurrentModification is returned when a document that was read for
// an update no longer matches its identifier and revision at write time.
var ErrConcurrentModification = errors.New("document changed or was removed since it was read")

// ResultsNotFound returns true when the error signals that a query
// matched no documents.
func ResultsNotFound(err error) bool {
	return err != nil && adb.ResultsNotFound(err)
}

// IsConcurrentModification returns true when a revision-checked write
// lost the race against another writer.
func IsConcurrentModification(err error) bool {
	return err != nil && errors.Cause(err) == ErrConcurrentModification
}

// ParseID converts a path identifier into an ObjectID. The second return
// value is false when the string cannot identify any document.
func ParseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// ById returns a filter matching the document with the given primary key.
func ById(id primitive.ObjectID) bson.M {
	return bson.M{IdKey: id}
}

// ByIdAndRevision matches the document only while it is still at the
// given revision. Revision 0 also matches a document with no revision
// field, which is how documents written outside web420 decode.
func ByIdAndRevision(id primitive.ObjectID, revisionKey string, revision int) bson.M {
	if revision == 0 {
		return bson.M{
			IdKey: id,
			"$or": []bson.M{
				{revisionKey: 0},
				{revisionKey: bson.M{"$exists": false}},
			},
		}
	}
	return bson.M{IdKey: id, revisionKey: revision}
}
