// Package graph exposes the service layer as a GraphQL API.
package graph

import (
	"sick-fits/models"

	"github.com/graphql-go/graphql"
)

var permissionEnum = func() *graphql.Enum {
	values := graphql.EnumValueConfigMap{}
	for _, p := range models.AllPermissions {
		values[string(p)] = &graphql.EnumValueConfig{Value: string(p)}
	}
	return graphql.NewEnum(graphql.EnumConfig{
		Name:   "Permission",
		Values: values,
	})
}()

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"permissions": &graphql.Field{Type: graphql.NewList(permissionEnum)},
	},
})

var successMessageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SuccessMessage",
	Fields: graphql.Fields{
		"message": &graphql.Field{Type: graphql.String},
	},
})

var imageUploadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ImageUpload",
	Fields: graphql.Fields{
		"key":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"uploadUrl": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"publicUrl": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"expiresAt": &graphql.Field{Type: graphql.DateTime},
	},
})

func itemType(r *Resolver) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Item",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"image":       &graphql.Field{Type: graphql.String},
			"largeImage":  &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
			"user":        &graphql.Field{Type: userType, Resolve: r.itemUser},
		},
	})
}

func nonNullString() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}
}

func nullableString() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.String}
}

func nonNullID() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
}

// NewSchema builds the schema with every field bound to r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	item := itemType(r)

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    userType,
				Resolve: observe(r.me),
			},
			"items": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(item)),
				Args: graphql.FieldConfigArgument{
					"skip":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"first": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 4},
				},
				Resolve: observe(r.itemsList),
			},
			"item": &graphql.Field{
				Type:    item,
				Args:    graphql.FieldConfigArgument{"id": nonNullID()},
				Resolve: observe(r.item),
			},
			"itemsCount": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Int),
				Resolve: observe(r.itemsCount),
			},
			"users": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(userType)),
				Resolve: observe(r.usersList),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createItem": &graphql.Field{
				Type: graphql.NewNonNull(item),
				Args: graphql.FieldConfigArgument{
					"title":       nonNullString(),
					"description": nonNullString(),
					"price":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"image":       nullableString(),
					"largeImage":  nullableString(),
				},
				Resolve: observe(r.createItem),
			},
			"updateItem": &graphql.Field{
				Type: item,
				Args: graphql.FieldConfigArgument{
					"id":          nonNullID(),
					"title":       nullableString(),
					"description": nullableString(),
					"price":       &graphql.ArgumentConfig{Type: graphql.Int},
					"image":       nullableString(),
					"largeImage":  nullableString(),
				},
				Resolve: observe(r.updateItem),
			},
			"deleteItem": &graphql.Field{
				Type:    item,
				Args:    graphql.FieldConfigArgument{"id": nonNullID()},
				Resolve: observe(r.deleteItem),
			},
			"requestImageUpload": &graphql.Field{
				Type:    graphql.NewNonNull(imageUploadType),
				Args:    graphql.FieldConfigArgument{"contentType": nonNullString()},
				Resolve: observe(r.requestImageUpload),
			},
			"signup": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"email":    nonNullString(),
					"password": nonNullString(),
					"name":     nonNullString(),
				},
				Resolve: observe(r.signup),
			},
			"signin": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"email":    nonNullString(),
					"password": nonNullString(),
				},
				Resolve: observe(r.signin),
			},
			"signout": &graphql.Field{
				Type:    successMessageType,
				Resolve: observe(r.signout),
			},
			"requestReset": &graphql.Field{
				Type:    successMessageType,
				Args:    graphql.FieldConfigArgument{"email": nonNullString()},
				Resolve: observe(r.requestReset),
			},
			"resetPassword": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"resetToken":      nonNullString(),
					"password":        nonNullString(),
					"confirmPassword": nonNullString(),
				},
				Resolve: observe(r.resetPassword),
			},
			"updatePermissions": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"permissions": &graphql.ArgumentConfig{Type: graphql.NewList(permissionEnum)},
					"userId":      nonNullID(),
				},
				Resolve: observe(r.updatePermissions),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
