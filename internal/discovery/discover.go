package discovery

import (
	"sort"

	"runtests/internal/domain"
)

// Discover scans root and returns every test module with its test classes,
// sorted by module name. Modules without test classes are omitted.
func Discover(scanner *Scanner, parser *Parser, root string) ([]domain.TestModule, error) {
	files, err := scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	var modules []domain.TestModule
	for _, file := range files {
		names, err := parser.FindTestClasses(file)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			continue
		}

		module := domain.TestModule{
			Module:   ModuleName(root, file),
			FilePath: file,
		}
		for _, name := range names {
			module.Classes = append(module.Classes, domain.TestClass{
				Name:     name,
				Module:   module.Module,
				FilePath: file,
			})
		}
		modules = append(modules, module)
	}

	sort.Slice(modules, func(i, j int) bool { return modules[i].Module < modules[j].Module })
	return modules, nil
}
