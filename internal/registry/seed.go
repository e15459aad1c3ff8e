package registry

// seedBanks is the packaged bank directory snapshot. Production deployments
// can replace it with a postgres-backed directory (internal/registry/store);
// the snapshot keeps the library useful without any infrastructure.
//
// German rows carry the Bundesbank check-digit method in ChecksumAlgo where
// the institution publishes one; BBAN checksum validation only applies to
// banks that do.
var seedBanks = []Bank{
	// Germany
	{CountryCode: "DE", BankCode: "10010010", Name: "Postbank", ShortName: "Postbank Berlin", BIC: "PBNKDEFFXXX", Primary: true},
	{CountryCode: "DE", BankCode: "20070024", Name: "Deutsche Bank Privat- und Geschaeftskunden", ShortName: "Deutsche Bank PGK Hamburg", BIC: "DEUTDEDBHAM", Primary: true},
	{CountryCode: "DE", BankCode: "20070024", Name: "Deutsche Bank", ShortName: "Deutsche Bank Hamburg", BIC: "DEUTDEHHXXX"},
	{CountryCode: "DE", BankCode: "29090900", Name: "PSD Bank Nord", ShortName: "PSD Bank Bremen", BIC: "GENODEF1P03", Primary: true, ChecksumAlgo: "00"},
	{CountryCode: "DE", BankCode: "37040044", Name: "Commerzbank", ShortName: "Commerzbank Koeln", BIC: "COBADEFFXXX", Primary: true, ChecksumAlgo: "00"},
	{CountryCode: "DE", BankCode: "43060967", Name: "GLS Gemeinschaftsbank", ShortName: "GLS Gemeinschaftsbk Bochum", BIC: "GENODEM1GLS", Primary: true},
	{CountryCode: "DE", BankCode: "50010517", Name: "ING-DiBa", ShortName: "ING-DiBa Frankfurt am Main", BIC: "INGDDEFFXXX", Primary: true},

	// France - BNP Paribas exposes branch BICs next to the primary one.
	{CountryCode: "FR", BankCode: "30004", Name: "BNP Paribas", ShortName: "BNP Paribas", BIC: "BNPAFRPP", Primary: true},
	{CountryCode: "FR", BankCode: "30004", Name: "BNP Paribas", ShortName: "BNP Paribas Paris A", BIC: "BNPAFRPPPAA"},
	{CountryCode: "FR", BankCode: "30004", Name: "BNP Paribas", ShortName: "BNP Paribas Mediterranee", BIC: "BNPAFRPPMED"},
	{CountryCode: "FR", BankCode: "20041", Name: "La Banque Postale", ShortName: "La Banque Postale", BIC: "PSSTFRPPXXX", Primary: true},

	// Austria
	{CountryCode: "AT", BankCode: "19043", Name: "Raiffeisenlandesbank Niederoesterreich-Wien", ShortName: "RLB NOe-Wien", BIC: "RLNWATWWXXX", Primary: true},

	// Belgium
	{CountryCode: "BE", BankCode: "096", Name: "Belfius Bank", ShortName: "Belfius", BIC: "GKCCBEBB", Primary: true},

	// Switzerland
	{CountryCode: "CH", BankCode: "00762", Name: "UBS Switzerland", ShortName: "UBS Zuerich", BIC: "UBSWCHZH80A", Primary: true},

	// Spain
	{CountryCode: "ES", BankCode: "2100", Name: "CaixaBank", ShortName: "CaixaBank Barcelona", BIC: "CAIXESBBXXX", Primary: true},
	{CountryCode: "ES", BankCode: "0182", Name: "Banco Bilbao Vizcaya Argentaria", ShortName: "BBVA Madrid", BIC: "BBVAESMMXXX", Primary: true},

	// Italy
	{CountryCode: "IT", BankCode: "05428", Name: "Banca Popolare di Bergamo", ShortName: "BP Bergamo", BIC: "BLOPIT22", Primary: true},
	{CountryCode: "IT", BankCode: "03069", Name: "Intesa Sanpaolo", ShortName: "Intesa Sanpaolo Milano", BIC: "BCITITMMXXX", Primary: true},

	// Netherlands - bank codes are letters.
	{CountryCode: "NL", BankCode: "ABNA", Name: "ABN AMRO", ShortName: "ABN AMRO Amsterdam", BIC: "ABNANL2A", Primary: true},
	{CountryCode: "NL", BankCode: "INGB", Name: "ING Bank", ShortName: "ING Amsterdam", BIC: "INGBNL2A", Primary: true},

	// United Kingdom
	{CountryCode: "GB", BankCode: "NWBK", Name: "National Westminster Bank", ShortName: "NatWest London", BIC: "NWBKGB2L", Primary: true},
	{CountryCode: "GB", BankCode: "BARC", Name: "Barclays Bank", ShortName: "Barclays London", BIC: "BARCGB22", Primary: true},

	// Latvia - bank codes are letters.
	{CountryCode: "LV", BankCode: "RIKO", Name: "Luminor Bank", ShortName: "Luminor Riga", BIC: "RIKOLV2XXXX", Primary: true},

	// Poland - directory keys are the 8-digit settlement number.
	{CountryCode: "PL", BankCode: "10100055", Name: "Narodowy Bank Polski", ShortName: "NBP Warszawa", BIC: "NBPLPLPWXXX", Primary: true},

	// Slovakia
	{CountryCode: "SK", BankCode: "0900", Name: "Slovenska sporitelna", ShortName: "SLSP Bratislava", BIC: "GIBASKBX", Primary: true},
}
