package repository

import "errors"

// ErrWizardExists is returned by Create when the id is already in use.
var ErrWizardExists = errors.New("wizard already exists")
