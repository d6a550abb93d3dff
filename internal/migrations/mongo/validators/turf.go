package validators

import "go.mongodb.org/mongo-driver/bson"

var TurfValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"owner_id",
			"name",
			"location",
			"sport",
			"rate_per_hour",
			"open_time",
			"close_time",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"owner_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"maxLength": 16,
			},

			"location": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"sport": bson.M{
				"bsonType": "string",
				"enum": []string{
					"football",
					"cricket",
					"badminton",
					"tennis",
					"basketball",
				},
			},

			"description": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"rate_per_hour": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"open_time": bson.M{
				"bsonType": "string",
				"pattern":  "^([01]?[0-9]|2[0-3]):[0-5][0-9]$",
			},

			"close_time": bson.M{
				"bsonType": "string",
				"pattern":  "^([01]?[0-9]|2[0-3]):[0-5][0-9]$",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
