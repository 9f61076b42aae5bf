package washroom

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// DocID is a document _id of any BSON type, kept in its string form.
// ObjectIDs become their hex form.
type DocID string

func (id *DocID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.ObjectID:
		*id = DocID(rv.ObjectID().Hex())
	case bsontype.String:
		*id = DocID(rv.StringValue())
	case bsontype.Int32:
		*id = DocID(strconv.FormatInt(int64(rv.Int32()), 10))
	case bsontype.Int64:
		*id = DocID(strconv.FormatInt(rv.Int64(), 10))
	case bsontype.Null, bsontype.Undefined:
		*id = ""
	default:
		*id = DocID(rv.String())
	}
	return nil
}

func (id DocID) String() string { return string(id) }
