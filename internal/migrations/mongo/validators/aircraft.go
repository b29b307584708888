package validators

import "go.mongodb.org/mongo-driver/bson"

var AircraftValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"registration", "model", "active", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{"bsonType": "objectId"},
			"registration": bson.M{
				"bsonType": "string",
				"pattern":  `^[A-Z0-9]{1,3}-?[A-Z0-9]{1,6}$`,
			},
			"model": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},
			"active":     bson.M{"bsonType": "bool"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
