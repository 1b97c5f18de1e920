package unwrapcheck

import (
	"errors"
	"fmt"

	"golang.org/x/tools/go/packages"
)

// loadErrors lists the packages that could not be parsed or type-checked.
type loadErrors []*packages.Package

func (pkgs loadErrors) Error() string {
	errs := make([]error, 0, len(pkgs))

	for _, pkg := range pkgs {
		var perrs []error

		for _, err := range pkg.Errors {
			perrs = append(perrs, fmt.Errorf("\t%w", err))
		}

		for _, err := range pkg.TypeErrors {
			perrs = append(perrs, fmt.Errorf("\ttypes: %w", err))
		}

		errs = append(errs, fmt.Errorf("package %s:\n%w", pkg.PkgPath, errors.Join(perrs...)))
	}

	return errors.Join(errs...).Error()
}
