package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"phone",
			"role",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
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

			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
			},

			"role": bson.M{
				"bsonType": "string",
				"enum": []string{
					"player",
					"owner",
					"admin",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
