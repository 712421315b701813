package profile

// Profile defines blur parameters for a kind of output.
type Profile struct {
	Name      string
	Radius    int    // blur radius in full-resolution pixels
	Downscale int    // blur at 1/Downscale resolution, 1 = full resolution
	Alpha     bool   // blur alpha too (requires premultiplied input)
	Format    string // output format
	Quality   int    // encoding quality 1-100
}

// Built-in profiles.
var profiles = map[string]Profile{
	"backdrop": {
		Name:      "backdrop",
		Radius:    12,
		Downscale: 4,
		Alpha:     false,
		Format:    "jpeg",
		Quality:   82,
	},
	"frosted": {
		Name:      "frosted",
		Radius:    20,
		Downscale: 8,
		Alpha:     true,
		Format:    "png",
		Quality:   0,
	},
	"soft": {
		Name:      "soft",
		Radius:    3,
		Downscale: 1,
		Alpha:     false,
		Format:    "png",
		Quality:   0,
	},
}

// Get returns a profile by name. Falls back to backdrop if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["backdrop"]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profiles in a stable order.
func Names() []string {
	return []string{"backdrop", "frosted", "soft"}
}

// ScaledRadius is the radius applied at the downscaled resolution. A positive
// radius never scales down to zero.
func (p Profile) ScaledRadius() int {
	ds := max(p.Downscale, 1)
	r := p.Radius / ds
	if p.Radius > 0 {
		r = max(r, 1)
	}
	return r
}
