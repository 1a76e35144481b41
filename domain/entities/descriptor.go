package entities

// Descriptor carries the identifying metadata shared by process descriptions
// and parameters. Only Identifier is expected to be non-empty for an
// addressable entity.
type Descriptor struct {
	Identifier string
	Title      string
	Abstract   string
	Version    string
}

// GetIdentifier returns the descriptor identifier.
func (d *Descriptor) GetIdentifier() string { return d.Identifier }

// SetIdentifier sets the descriptor identifier.
func (d *Descriptor) SetIdentifier(identifier string) { d.Identifier = identifier }

// GetTitle returns the descriptor title.
func (d *Descriptor) GetTitle() string { return d.Title }

// SetTitle sets the descriptor title.
func (d *Descriptor) SetTitle(title string) { d.Title = title }

// GetAbstract returns the descriptor abstract.
func (d *Descriptor) GetAbstract() string { return d.Abstract }

// SetAbstract sets the descriptor abstract.
func (d *Descriptor) SetAbstract(abstract string) { d.Abstract = abstract }

// GetVersion returns the descriptor version.
func (d *Descriptor) GetVersion() string { return d.Version }

// SetVersion sets the descriptor version.
func (d *Descriptor) SetVersion(version string) { d.Version = version }
