package domain

// TestClass represents a Django TestCase subclass found in a test module
type TestClass struct {
	Name     string // Class name
	Module   string // Dotted module path, e.g. users.tests
	FilePath string // Path to the file that defines it
}

// Label returns the dotted test label Django accepts for this class
func (c TestClass) Label() string {
	if c.Module == "" {
		return c.Name
	}
	return c.Module + "." + c.Name
}

// TestModule groups the classes discovered in a single test file
type TestModule struct {
	Module   string
	FilePath string
	Classes  []TestClass
}
