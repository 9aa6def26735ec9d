package manifest

// SchemaOrgContext is the @context recorded on creative-work assertions.
const SchemaOrgContext = "http://schema.org/"

// digitalSourceTypePrefix is the IPTC digital source type vocabulary.
const digitalSourceTypePrefix = "http://cv.iptc.org/newscodes/digitalsourcetype/"

// Author identifies one creator of a work, either an organization or a
// person.
type Author struct {
	AuthorType string `json:"author_type"`
	Name       string `json:"name"`
}

// CreativeWorkAssertion describes the produced work and its authors.
type CreativeWorkAssertion struct {
	Context      string   `json:"context"`
	CreativeType string   `json:"creative_type"`
	Author       []Author `json:"author"`
}

// Action records one processing step with free-form parameters.
type Action struct {
	Action            string         `json:"action"`
	SoftwareAgent     string         `json:"software_agent,omitempty"`
	Parameters        map[string]any `json:"parameters,omitempty"`
	DigitalSourceType string         `json:"digital_source_type,omitempty"`
	InstanceID        string         `json:"instance_id,omitempty"`
}

// ActionAssertion groups the actions taken to produce the asset.
type ActionAssertion struct {
	Actions []Action `json:"actions"`
}

// CustomAssertion carries an opaque labeled payload, used for
// confidential-computing attestation reports.
type CustomAssertion struct {
	Label string `json:"label"`
	Data  any    `json:"data"`
}

// Assertion is a tagged union over the assertion variants; exactly one
// field is non-nil. Assertion order within a claim is insertion order and
// carries no semantics — searches match by variant and field, not
// position.
type Assertion struct {
	CreativeWork *CreativeWorkAssertion `json:"creative_work,omitempty"`
	Action       *ActionAssertion       `json:"action,omitempty"`
	Custom       *CustomAssertion       `json:"custom,omitempty"`
}

// NewCreativeWork wraps a creative-work assertion.
func NewCreativeWork(a CreativeWorkAssertion) Assertion {
	return Assertion{CreativeWork: &a}
}

// NewAction wraps an action assertion.
func NewAction(a ActionAssertion) Assertion {
	return Assertion{Action: &a}
}

// NewCustom wraps a custom assertion.
func NewCustom(a CustomAssertion) Assertion {
	return Assertion{Custom: &a}
}

// hasCreativeWork reports whether any claim slot carries a creative-work
// assertion with the given creative type.
func (m *Manifest) hasCreativeWork(creativeType string) bool {
	for _, c := range m.claims() {
		for _, a := range c.CreatedAssertions {
			if a.CreativeWork != nil && a.CreativeWork.CreativeType == creativeType {
				return true
			}
		}
	}
	return false
}

// hasSoftwareParameters reports whether any action in any claim slot
// carries a software_type parameter.
func (m *Manifest) hasSoftwareParameters() bool {
	for _, c := range m.claims() {
		for _, a := range c.CreatedAssertions {
			if a.Action == nil {
				continue
			}
			for _, act := range a.Action.Actions {
				if act.Parameters == nil {
					continue
				}
				if _, ok := act.Parameters["software_type"]; ok {
					return true
				}
			}
		}
	}
	return false
}
