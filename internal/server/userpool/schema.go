// Package userpool provisions the Cognito user pool that backs cooksocial
// accounts and checks an existing pool against the expected attribute schema.
package userpool

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

const customPrefix = "custom:"

// Attribute is one String attribute of the pool schema. Name carries the
// "custom:" prefix for developer-defined attributes, as Cognito reports them.
type Attribute struct {
	Name     string
	Required bool
	Mutable  bool
}

// Schema lists the attributes every cooksocial pool must carry. Sign-up
// writes them, and the PostConfirmation trigger copies them into the
// profile store.
var Schema = []Attribute{
	{Name: "email", Mutable: true},
	{Name: "preferred_username", Required: true, Mutable: true},
	{Name: "phone_number", Mutable: true},
	{Name: "custom:nationality", Mutable: true},
	{Name: "custom:allergies", Mutable: true},
}

func (a Attribute) Custom() bool {
	return strings.HasPrefix(a.Name, customPrefix)
}

// schemaType converts a to the SDK type. Cognito expects custom attribute
// names without the prefix when they are created.
func (a Attribute) schemaType() types.SchemaAttributeType {
	return types.SchemaAttributeType{
		Name:              aws.String(strings.TrimPrefix(a.Name, customPrefix)),
		AttributeDataType: types.AttributeDataTypeString,
		Required:          aws.Bool(a.Required),
		Mutable:           aws.Bool(a.Mutable),
	}
}

func schemaTypes(attrs []Attribute) []types.SchemaAttributeType {
	out := make([]types.SchemaAttributeType, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a.schemaType())
	}
	return out
}
