package authz

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Objects and actions of the role matrix.
const (
	objTemplate = "template"
	objCart     = "cart"
	objPurchase = "purchase"
	objSummary  = "summary"

	actCreate   = "create"
	actModerate = "moderate"
	actManage   = "manage"
	actUse      = "use"
	actRead     = "read"
)

// newEnforcer builds the role to capability matrix from the embedded model and policy.
func newEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	var policies, groupings [][]string
	for _, line := range strings.Split(embeddedPolicy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		switch {
		case parts[0] == "p" && len(parts) == 4:
			policies = append(policies, parts[1:])
		case parts[0] == "g" && len(parts) == 3:
			groupings = append(groupings, parts[1:])
		default:
			return nil, fmt.Errorf("malformed policy line %q", line)
		}
	}

	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("failed to add policies: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicies(groupings); err != nil {
		return nil, fmt.Errorf("failed to add grouping policies: %w", err)
	}
	return enforcer, nil
}
