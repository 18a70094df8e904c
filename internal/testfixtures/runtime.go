package testfixtures

import "github.com/broady/scalegen/metadata"

// Type ids of the registry built by Runtime.
const (
	IDBool metadata.TypeID = iota + 1
	IDU32
	IDU128
	IDBytes32
	IDU8
	IDAccountID
	IDBytes
	IDOptionU32
	IDAccountInfo
	IDAccountData
	IDDispatchClass
	IDAccountBalance
	IDU64
)

// Runtime returns a small but complete version 13 descriptor with four
// modules: one with calls and events, one with only calls, one with only
// events and one with neither. Each call returns a fresh value.
func Runtime() *metadata.Prefixed {
	b := NewRegistry()
	b.Primitive(metadata.PrimitiveBool)
	b.Primitive(metadata.PrimitiveU32)
	b.Primitive(metadata.PrimitiveU128)
	b.Add(Arr(32, IDU8))
	b.Primitive(metadata.PrimitiveU8)
	b.Add(Documented(Struct("sp_core::crypto::AccountId32", Unnamed(IDBytes32)),
		"An opaque 32-byte cryptographic identifier."))
	b.Add(Seq(IDU8))
	b.Add(Generic(Enum("Option", Alt("None"), Alt("Some", Unnamed(IDU32))), IDU32))
	b.Add(Generic(Struct("frame_system::AccountInfo",
		Named("nonce", IDU32),
		Named("data", IDAccountData),
	), IDU32, IDAccountData))
	b.Add(Generic(Struct("pallet_balances::AccountData",
		Named("free", IDU128),
		Named("reserved", IDU128),
	), IDU128))
	b.Add(Enum("frame_support::weights::DispatchClass",
		Alt("Normal"), Alt("Operational"), Alt("Mandatory")))
	b.Add(Tup(IDAccountID, IDU128))
	b.Primitive(metadata.PrimitiveU64)

	return metadata.NewV13(&metadata.V13{
		Types: *b.Build(),
		Modules: []metadata.Module{
			{
				Name:  "System",
				Index: 0,
				Calls: []metadata.Call{
					{
						Name: "remark",
						Args: []metadata.CallArg{{Name: "remark", Type: IDBytes, TypeName: "Vec<u8>"}},
						Docs: []string{"Make some on-chain remark."},
					},
					{
						Name: "set_heap_pages",
						Args: []metadata.CallArg{{Name: "pages", Type: IDU64, TypeName: "u64"}},
					},
				},
				Events: []metadata.Event{
					{
						Name: "NewAccount",
						Args: []metadata.EventArg{{Type: IDAccountID, TypeName: "T::AccountId"}},
						Docs: []string{"A new account was created."},
					},
					{
						Name: "KilledAccount",
						Args: []metadata.EventArg{{Type: IDAccountID, TypeName: "T::AccountId"}},
					},
				},
			},
			{
				Name:  "Timestamp",
				Index: 1,
				Calls: []metadata.Call{
					{
						Name: "set",
						Args: []metadata.CallArg{{Name: "now", Type: IDU64, TypeName: "T::Moment"}},
					},
				},
			},
			{
				Name:  "Balances",
				Index: 2,
				Calls: []metadata.Call{
					{
						Name: "transfer",
						Args: []metadata.CallArg{
							{Name: "dest", Type: IDAccountID},
							{Name: "value", Type: IDU128},
						},
					},
					{
						Name: "transfer_keep_alive",
						Args: []metadata.CallArg{
							{Name: "dest", Type: IDAccountID},
							{Name: "value", Type: IDU128},
						},
					},
				},
				Events: []metadata.Event{
					{
						Name: "Endowed",
						Args: []metadata.EventArg{{Type: IDAccountID}, {Type: IDU128}},
					},
					{
						Name: "Transfer",
						Args: []metadata.EventArg{{Type: IDAccountID}, {Type: IDAccountID}, {Type: IDU128}},
					},
				},
			},
			{
				Name:  "ElectionsPhragmen",
				Index: 3,
				Docs:  []string{"Phragmen elections."},
			},
		},
	})
}
