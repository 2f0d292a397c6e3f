// Package builtin provides a minimal, hardcoded RADIUS dictionary covering
// RFC 2865/2866/2868/2869/6929 base attributes plus a Cisco VSA, enough to
// run the decoder without an external dictionary file. Real deployments
// should prefer pkg/radius/dictionary/loader against a FreeRADIUS-style
// dictionary file, or pkg/radius/dictionary/dictsource for a fleet-shared
// one; this package exists because spec.md treats the dictionary loader as
// an external collaborator and the CLI needs something to decode against by
// default.
package builtin

import "github.com/openradius/raddecode/pkg/radius/dictionary"

// New builds the built-in dictionary.
func New() *dictionary.Memory {
	d := dictionary.New()
	root := d.Root()

	add := func(num uint32, name string, typ dictionary.SemanticType, flags dictionary.Flags) *dictionary.Descriptor {
		c := dictionary.NewDescriptor(num, name, typ, root, flags)
		root.AddChild(c)
		return c
	}

	add(1, "User-Name", dictionary.TypeString, dictionary.Flags{})
	add(2, "User-Password", dictionary.TypeString, dictionary.Flags{Subtype: dictionary.SubtypeUserPassword})
	add(3, "CHAP-Password", dictionary.TypeOctets, dictionary.Flags{})
	add(4, "NAS-IP-Address", dictionary.TypeIPv4Addr, dictionary.Flags{})
	add(5, "NAS-Port", dictionary.TypeUint32, dictionary.Flags{})
	add(6, "Service-Type", dictionary.TypeUint32, dictionary.Flags{})
	add(7, "Framed-Protocol", dictionary.TypeUint32, dictionary.Flags{})
	add(8, "Framed-IP-Address", dictionary.TypeIPv4Addr, dictionary.Flags{})
	add(9, "Framed-IP-Netmask", dictionary.TypeIPv4Addr, dictionary.Flags{})
	add(22, "Framed-Route", dictionary.TypeString, dictionary.Flags{})
	add(24, "State", dictionary.TypeOctets, dictionary.Flags{})
	add(25, "Class", dictionary.TypeOctets, dictionary.Flags{})
	add(26, "Vendor-Specific", dictionary.TypeVSA, dictionary.Flags{})
	add(27, "Session-Timeout", dictionary.TypeUint32, dictionary.Flags{})
	add(40, "Acct-Status-Type", dictionary.TypeUint32, dictionary.Flags{})
	add(44, "Acct-Session-Id", dictionary.TypeString, dictionary.Flags{})
	add(55, "Event-Timestamp", dictionary.TypeDate, dictionary.Flags{})
	add(64, "Tunnel-Type", dictionary.TypeUint32, dictionary.Flags{HasTag: true})
	add(65, "Tunnel-Medium-Type", dictionary.TypeUint32, dictionary.Flags{HasTag: true})
	add(69, "Tunnel-Password", dictionary.TypeString, dictionary.Flags{HasTag: true, Subtype: dictionary.SubtypeTunnelPassword})
	add(79, "EAP-Message", dictionary.TypeOctets, dictionary.Flags{Concat: true})
	add(80, "Message-Authenticator", dictionary.TypeOctets, dictionary.Flags{Length: 16})
	add(87, "NAS-Port-Id", dictionary.TypeString, dictionary.Flags{})
	add(89, "Chargeable-User-Identity", dictionary.TypeString, dictionary.Flags{})
	add(97, "Framed-IPv6-Prefix", dictionary.TypeIPv6Prefix, dictionary.Flags{})
	add(118, "Framed-Pool", dictionary.TypeString, dictionary.Flags{})

	extended := add(241, "Extended-Attribute-1", dictionary.TypeExtended, dictionary.Flags{})
	extLong := add(245, "Extended-Attribute-5", dictionary.TypeExtended, dictionary.Flags{Extra: true})
	addExtChild(extended, 1, "Extended-Vendor-Specific", dictionary.TypeVSA)
	addExtChild(extLong, 1, "Long-Extended-Octets", dictionary.TypeOctets)

	cisco := dictionary.NewVendor(9, "Cisco", 1, 1)
	avpair := dictionary.NewDescriptor(1, "Cisco-AVPair", dictionary.TypeString, cisco.Root, dictionary.Flags{})
	cisco.Root.AddChild(avpair)
	d.RegisterVendor(cisco)

	// MS-MPPE-Send-Key/Recv-Key are Microsoft (PEN 311) VSA sub-attributes
	// 16/17, salted with the same User-Password obfuscation keyed by a
	// fixed 32-byte length (RFC 2548).
	microsoft := dictionary.NewVendor(311, "Microsoft", 1, 1)
	sendKey := dictionary.NewDescriptor(16, "MS-MPPE-Send-Key", dictionary.TypeOctets, microsoft.Root,
		dictionary.Flags{Subtype: dictionary.SubtypeUserPassword, Length: 32})
	recvKey := dictionary.NewDescriptor(17, "MS-MPPE-Recv-Key", dictionary.TypeOctets, microsoft.Root,
		dictionary.Flags{Subtype: dictionary.SubtypeUserPassword, Length: 32})
	microsoft.Root.AddChild(sendKey)
	microsoft.Root.AddChild(recvKey)
	d.RegisterVendor(microsoft)

	wimax := dictionary.NewVendor(24757, "WiMAX", 1, 1)
	wimax.IsWiMAX = true
	capability := dictionary.NewDescriptor(26, "WiMAX-Capability", dictionary.TypeTLV, wimax.Root, dictionary.Flags{})
	wimax.Root.AddChild(capability)
	release := dictionary.NewDescriptor(27, "WiMAX-Release", dictionary.TypeOctets, wimax.Root, dictionary.Flags{})
	wimax.Root.AddChild(release)
	d.RegisterVendor(wimax)

	return d
}

func addExtChild(parent *dictionary.Descriptor, num uint32, name string, typ dictionary.SemanticType) *dictionary.Descriptor {
	c := dictionary.NewDescriptor(num, name, typ, parent, dictionary.Flags{})
	parent.AddChild(c)
	return c
}
