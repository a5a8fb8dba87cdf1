package interfaces

// SchemaDefinitions holds the schema string registered on-chain for every record type.
// Field order here is the field order of the encoded payload.
var SchemaDefinitions = map[RecordType]string{
	BrandIdentityType: "bytes32 brandHash,string name,uint256 version,uint256 timestamp",
	ContentCheckType:  "bytes32 contentHash,bytes32 brandHash,uint256 alignmentScore,uint256 authenticityScore,uint256 timestamp",
	BrandScoreType: "uint256 overallScore,uint256 clarityScore,uint256 consistencyScore,uint256 differentiationScore," +
		"uint256 engagementScore,uint256 timestamp,string username,string archetype",
	VoiceFingerprintType: "bytes32 brandHash,uint256 formality,uint256 warmth,uint256 energy,uint256 confidence," +
		"uint256 timestamp,string tone,string vocabulary",
	BrandHealthType: "bytes32 brandHash,uint256 healthScore,uint256 previousScore,uint256 timestamp," +
		"string username,string grade,string summary",
}
