package userpool

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/dmitrijs2005/cooksocial/internal/logging"
)

// minPasswordLength matches the client-side strength rules.
const minPasswordLength = 8

var ErrNoUserPool = errors.New("user pool not returned")

type cognitoAdminAPI interface {
	CreateUserPool(ctx context.Context, in *cip.CreateUserPoolInput, optFns ...func(*cip.Options)) (*cip.CreateUserPoolOutput, error)
	DescribeUserPool(ctx context.Context, in *cip.DescribeUserPoolInput, optFns ...func(*cip.Options)) (*cip.DescribeUserPoolOutput, error)
	AddCustomAttributes(ctx context.Context, in *cip.AddCustomAttributesInput, optFns ...func(*cip.Options)) (*cip.AddCustomAttributesOutput, error)
}

// Divergence describes a pool attribute that differs from Schema and cannot
// be fixed in place. Standard attributes are immutable after pool creation.
type Divergence struct {
	Name   string
	Reason string
}

func (d Divergence) String() string {
	return d.Name + ": " + d.Reason
}

// Report is the outcome of Ensure.
type Report struct {
	Added     []string
	Diverging []Divergence
}

// InSync reports whether the pool now matches Schema.
func (r *Report) InSync() bool {
	return len(r.Diverging) == 0
}

type Provisioner struct {
	api cognitoAdminAPI
	log logging.Logger
}

func NewProvisioner(api cognitoAdminAPI, log logging.Logger) *Provisioner {
	return &Provisioner{api: api, log: log.With("module", "userpool")}
}

// Create makes a pool named name carrying Schema and returns its id. When
// postConfirmationARN is set the function is attached as the
// PostConfirmation trigger.
func (p *Provisioner) Create(ctx context.Context, name, postConfirmationARN string) (string, error) {
	in := &cip.CreateUserPoolInput{
		PoolName: aws.String(name),
		Schema:   schemaTypes(Schema),
		AliasAttributes: []types.AliasAttributeType{
			types.AliasAttributeTypeEmail,
			types.AliasAttributeTypePreferredUsername,
		},
		AutoVerifiedAttributes: []types.VerifiedAttributeType{types.VerifiedAttributeTypeEmail},
		Policies: &types.UserPoolPolicyType{
			PasswordPolicy: &types.PasswordPolicyType{
				MinimumLength:    aws.Int32(minPasswordLength),
				RequireUppercase: true,
				RequireLowercase: true,
				RequireNumbers:   true,
			},
		},
	}
	if postConfirmationARN != "" {
		in.LambdaConfig = &types.LambdaConfigType{PostConfirmation: aws.String(postConfirmationARN)}
	}

	out, err := p.api.CreateUserPool(ctx, in)
	if err != nil {
		return "", fmt.Errorf("create user pool error: %w", err)
	}
	if out.UserPool == nil || out.UserPool.Id == nil {
		return "", ErrNoUserPool
	}

	id := aws.ToString(out.UserPool.Id)
	p.log.Info(ctx, "user pool created", "name", name, "id", id, "trigger", postConfirmationARN != "")
	return id, nil
}

// Ensure compares pool poolID with Schema. Missing custom attributes are
// added; every other difference is returned in the report.
func (p *Provisioner) Ensure(ctx context.Context, poolID string) (*Report, error) {
	out, err := p.api.DescribeUserPool(ctx, &cip.DescribeUserPoolInput{UserPoolId: aws.String(poolID)})
	if err != nil {
		return nil, fmt.Errorf("describe user pool error: %w", err)
	}
	if out.UserPool == nil {
		return nil, ErrNoUserPool
	}

	existing := make(map[string]types.SchemaAttributeType, len(out.UserPool.SchemaAttributes))
	for _, a := range out.UserPool.SchemaAttributes {
		existing[aws.ToString(a.Name)] = a
	}

	report := &Report{}
	var missing []Attribute

	for _, want := range Schema {
		got, ok := existing[want.Name]
		if !ok {
			if want.Custom() {
				missing = append(missing, want)
			} else {
				report.Diverging = append(report.Diverging, Divergence{Name: want.Name, Reason: "missing"})
			}
			continue
		}
		report.Diverging = append(report.Diverging, compare(want, got)...)
	}

	if len(missing) > 0 {
		_, err := p.api.AddCustomAttributes(ctx, &cip.AddCustomAttributesInput{
			UserPoolId:       aws.String(poolID),
			CustomAttributes: schemaTypes(missing),
		})
		if err != nil {
			return nil, fmt.Errorf("add custom attributes error: %w", err)
		}
		for _, a := range missing {
			report.Added = append(report.Added, a.Name)
		}
		p.log.Info(ctx, "custom attributes added", "pool", poolID, "attributes", report.Added)
	}

	for _, d := range report.Diverging {
		p.log.Warn(ctx, "user pool attribute diverges", "pool", poolID, "attribute", d.Name, "reason", d.Reason)
	}

	return report, nil
}

func compare(want Attribute, got types.SchemaAttributeType) []Divergence {
	var out []Divergence

	if got.AttributeDataType != types.AttributeDataTypeString {
		out = append(out, Divergence{Name: want.Name, Reason: fmt.Sprintf("type %s, want String", got.AttributeDataType)})
	}
	if r := aws.ToBool(got.Required); r != want.Required {
		out = append(out, Divergence{Name: want.Name, Reason: fmt.Sprintf("required=%t, want %t", r, want.Required)})
	}
	if m := aws.ToBool(got.Mutable); m != want.Mutable {
		out = append(out, Divergence{Name: want.Name, Reason: fmt.Sprintf("mutable=%t, want %t", m, want.Mutable)})
	}
	return out
}
