package validators

import "go.mongodb.org/mongo-driver/bson"

var ProfileValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"role"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":   bson.M{"bsonType": "string", "maxLength": 64},
			"email": bson.M{"bsonType": "string", "maxLength": 254},
			"phone": bson.M{
				"bsonType": "string",
				"pattern":  `^(\+[1-9][0-9]{1,14})?$`,
			},
			"role": bson.M{
				"bsonType": "string",
				"enum":     []string{"member", "instructor", "admin"},
			},
			"nf":         bson.M{"bsonType": "bool"},
			"updated_at": bson.M{"bsonType": "date"},
		},
	},
}
