// Package loader parses FreeRADIUS-style dictionary text files into a
// pkg/radius/dictionary.Memory, so operators can run raddecode against the
// exact attribute set their NAS fleet actually emits instead of the
// hardcoded pkg/radius/dictionary/builtin set.
//
// Supported directives, a practical subset of the real FreeRADIUS grammar:
//
//	ATTRIBUTE <name> <number> <type> [<flag>[,<flag>...]]
//	VENDOR <name> <pen> [format=tW,lW]
//	BEGIN-VENDOR <name>
//	END-VENDOR
//	$INCLUDE <path>
//	# comment
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/openradius/raddecode/internal/logger"
	"github.com/openradius/raddecode/pkg/radius/dictionary"
)

// Load reads the dictionary text file at path (following $INCLUDE directives
// relative to its directory) into a fresh Memory dictionary.
func Load(path string) (*dictionary.Memory, error) {
	dict := dictionary.New()
	p := &parser{dict: dict, vendorsByName: make(map[string]*dictionary.Vendor)}
	if err := p.loadInto(path, 0); err != nil {
		return nil, err
	}
	logger.Info("dictionary loaded", logger.DictSource("file"), logger.DictPath(path))
	return dict, nil
}

// LoadReader parses dictionary text read from r into a fresh Memory
// dictionary. $INCLUDE is rejected since r has no base directory to resolve
// relative paths against; this is the entry point dictsource uses for
// dictionaries fetched from object storage.
func LoadReader(r io.Reader) (*dictionary.Memory, error) {
	dict := dictionary.New()
	p := &parser{dict: dict, vendorsByName: make(map[string]*dictionary.Vendor)}
	if err := p.parse(r, "", maxIncludeDepth); err != nil {
		return nil, err
	}
	return dict, nil
}

const maxIncludeDepth = 8

// parser holds the state shared across a single Load call's $INCLUDE chain:
// the dictionary being populated, and a name->Vendor index so BEGIN-VENDOR
// can resolve a vendor a VENDOR line registered earlier in the same load.
type parser struct {
	dict          *dictionary.Memory
	vendorsByName map[string]*dictionary.Vendor
}

func (p *parser) loadInto(path string, depth int) error {
	if depth > maxIncludeDepth {
		return fmt.Errorf("dictionary: $INCLUDE nesting exceeds %d at %s", maxIncludeDepth, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("dictionary: open %s: %w", path, err)
	}
	defer f.Close()

	return p.parse(f, filepath.Dir(path), depth)
}

func (p *parser) parse(r io.Reader, baseDir string, depth int) error {
	var currentVendor *dictionary.Vendor

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		keyword := strings.ToUpper(fields[0])

		switch keyword {
		case "$INCLUDE":
			if len(fields) < 2 {
				return fmt.Errorf("dictionary: line %d: $INCLUDE requires a path", lineNo)
			}
			incPath := fields[1]
			if !filepath.IsAbs(incPath) {
				incPath = filepath.Join(baseDir, incPath)
			}
			if err := p.loadInto(incPath, depth+1); err != nil {
				return err
			}

		case "VENDOR":
			v, err := parseVendorLine(fields)
			if err != nil {
				return fmt.Errorf("dictionary: line %d: %w", lineNo, err)
			}
			p.dict.RegisterVendor(v)
			p.vendorsByName[v.Name] = v

		case "BEGIN-VENDOR":
			if len(fields) < 2 {
				return fmt.Errorf("dictionary: line %d: BEGIN-VENDOR requires a vendor name", lineNo)
			}
			v, ok := p.vendorsByName[fields[1]]
			if !ok {
				return fmt.Errorf("dictionary: line %d: BEGIN-VENDOR references unknown vendor %q", lineNo, fields[1])
			}
			currentVendor = v

		case "END-VENDOR":
			currentVendor = nil

		case "ATTRIBUTE":
			parent := p.dict.Root()
			if currentVendor != nil {
				parent = currentVendor.Root
			}
			if err := parseAttributeLine(parent, fields); err != nil {
				return fmt.Errorf("dictionary: line %d: %w", lineNo, err)
			}

		default:
			// unrecognized directives (VALUE, ALIAS, etc.) are accepted
			// silently; this loader only needs enough of the grammar to
			// populate the descriptor tree the decoder consumes.
		}
	}
	return scanner.Err()
}

func parseVendorLine(fields []string) (*dictionary.Vendor, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("VENDOR requires name and number")
	}
	name := fields[1]
	pen, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("VENDOR %s: invalid PEN %q: %w", name, fields[2], err)
	}
	typeWidth, lengthWidth := 1, 1
	for _, f := range fields[3:] {
		if strings.HasPrefix(f, "format=") {
			spec := strings.TrimPrefix(f, "format=")
			parts := strings.Split(spec, ",")
			if len(parts) == 2 {
				tw, err1 := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(parts[0], "t"), ""))
				lw, err2 := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(parts[1], "l"), ""))
				if err1 == nil {
					typeWidth = tw
				}
				if err2 == nil {
					lengthWidth = lw
				}
			}
		}
	}
	v := dictionary.NewVendor(uint32(pen), name, typeWidth, lengthWidth)
	return v, nil
}

func parseAttributeLine(parent *dictionary.Descriptor, fields []string) error {
	if len(fields) < 4 {
		return fmt.Errorf("ATTRIBUTE requires name, number, and type")
	}
	name := fields[1]
	number, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return fmt.Errorf("ATTRIBUTE %s: invalid number %q: %w", name, fields[2], err)
	}
	typ, ok := parseTypeName(fields[3])
	if !ok {
		return fmt.Errorf("ATTRIBUTE %s: unknown type %q", name, fields[3])
	}

	flags := dictionary.Flags{}
	if len(fields) > 4 {
		for _, rawFlag := range strings.Split(fields[4], ",") {
			applyFlag(&flags, strings.TrimSpace(rawFlag))
		}
	}

	d := dictionary.NewDescriptor(uint32(number), name, typ, parent, flags)
	parent.AddChild(d)
	return nil
}

func applyFlag(flags *dictionary.Flags, flag string) {
	switch {
	case flag == "has_tag":
		flags.HasTag = true
	case flag == "concat":
		flags.Concat = true
	case flag == "long_extended":
		flags.Extra = true
	case flag == "encrypt=1":
		flags.Subtype = dictionary.SubtypeUserPassword
	case flag == "encrypt=2":
		flags.Subtype = dictionary.SubtypeTunnelPassword
	case flag == "encrypt=3":
		flags.Subtype = dictionary.SubtypeAscendSecret
	case strings.HasPrefix(flag, "length="):
		if n, err := strconv.Atoi(strings.TrimPrefix(flag, "length=")); err == nil {
			flags.Length = n
		}
	}
}

func parseTypeName(name string) (dictionary.SemanticType, bool) {
	switch strings.ToLower(name) {
	case "string":
		return dictionary.TypeString, true
	case "octets":
		return dictionary.TypeOctets, true
	case "ipaddr":
		return dictionary.TypeIPv4Addr, true
	case "ipv6addr":
		return dictionary.TypeIPv6Addr, true
	case "ipv4prefix":
		return dictionary.TypeIPv4Prefix, true
	case "ipv6prefix":
		return dictionary.TypeIPv6Prefix, true
	case "combo-ip":
		return dictionary.TypeComboIPAddr, true
	case "combo-prefix":
		return dictionary.TypeComboIPPrefix, true
	case "byte", "uint8":
		return dictionary.TypeUint8, true
	case "short", "uint16":
		return dictionary.TypeUint16, true
	case "integer", "uint32":
		return dictionary.TypeUint32, true
	case "integer64", "uint64":
		return dictionary.TypeUint64, true
	case "signed", "int32":
		return dictionary.TypeInt32, true
	case "date":
		return dictionary.TypeDate, true
	case "ifid":
		return dictionary.TypeIfID, true
	case "ethernet":
		return dictionary.TypeEthernet, true
	case "abinary":
		return dictionary.TypeAbinary, true
	case "tlv":
		return dictionary.TypeTLV, true
	case "struct":
		return dictionary.TypeStruct, true
	case "vsa":
		return dictionary.TypeVSA, true
	case "extended":
		return dictionary.TypeExtended, true
	default:
		return dictionary.TypeInvalid, false
	}
}
