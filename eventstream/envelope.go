package eventstream

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/sjson"
)

// marshalEnvelope builds the batch envelope:
//
//	{"batchId":"<uuid>","sentAt":<epoch millis>,"records":[{...},...]}
//
// Record fields are emitted in wire order.
func marshalEnvelope(batch []Record) ([]byte, error) {
	encoded := make([]string, 0, len(batch))
	for _, rec := range batch {
		doc := "{}"
		var err error
		for _, f := range rec.Fields {
			doc, err = sjson.Set(doc, f.Name, f.Value)
			if err != nil {
				return nil, err
			}
		}
		encoded = append(encoded, doc)
	}

	env := "{}"
	env, err := sjson.Set(env, "batchId", uuid.NewString())
	if err != nil {
		return nil, err
	}
	env, err = sjson.Set(env, "sentAt", time.Now().UnixMilli())
	if err != nil {
		return nil, err
	}
	env, err = sjson.SetRaw(env, "records", "["+strings.Join(encoded, ",")+"]")
	if err != nil {
		return nil, err
	}
	return []byte(env), nil
}
