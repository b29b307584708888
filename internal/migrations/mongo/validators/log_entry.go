package validators

import "go.mongodb.org/mongo-driver/bson"

var LogEntryValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"member_id",
			"aircraft",
			"date",
			"pic",
			"departure",
			"arrival",
			"off_block",
			"takeoff",
			"landing",
			"on_block",
			"flight_rules",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id":       bson.M{"bsonType": "objectId"},
			"member_id": bson.M{"bsonType": "string", "maxLength": 64},
			"aircraft":  bson.M{"bsonType": "string", "minLength": 2, "maxLength": 16},
			"date":      bson.M{"bsonType": "date"},
			"pic":       bson.M{"bsonType": "string", "minLength": 2, "maxLength": 100},
			"people_on_board": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  20,
			},
			"departure": bson.M{"bsonType": "string", "minLength": 2, "maxLength": 8},
			"arrival":   bson.M{"bsonType": "string", "minLength": 2, "maxLength": 8},
			"off_block": bson.M{"bsonType": "date"},
			"takeoff":   bson.M{"bsonType": "date"},
			"landing":   bson.M{"bsonType": "date"},
			"on_block":  bson.M{"bsonType": "date"},
			"landings": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},
			"flight_rules": bson.M{
				"bsonType": "string",
				"enum":     []string{"VFR", "IFR"},
			},
			"fuel_litres": bson.M{"bsonType": []string{"double", "int", "long"}},
		},
	},
}
