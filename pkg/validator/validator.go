package validator

// Apply evaluates every rule and returns ValidationErrors for the ones that
// failed, or nil when all passed.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if ve, failed := r.evaluate(); failed {
			errs = append(errs, ve)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// FirstOf combines rules for one field so that only the first failing rule
// is reported. Later rules are not evaluated once one fails.
func FirstOf(rules ...Rule) Rule {
	if len(rules) == 0 {
		return Rule{}
	}
	return Rule{Error: rules[0].Error, chain: rules}
}

func (r Rule) evaluate() (ValidationError, bool) {
	if len(r.chain) > 0 {
		for _, c := range r.chain {
			if ve, failed := c.evaluate(); failed {
				return ve, true
			}
		}
		return ValidationError{}, false
	}
	if r.Check == nil || r.Check() {
		return ValidationError{}, false
	}
	return r.Error, true
}
