package common

type Module string

const (
	ModuleRoyalty Module = "royalty"
)

func (m Module) String() string {
	return string(m)
}
