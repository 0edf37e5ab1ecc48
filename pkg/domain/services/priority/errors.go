package priority

import "errors"

func errNilNeeds() error {
	return errors.New("needs collection must not be nil")
}
