package devotion

// Catalog keys emitted by the generator. Display text is resolved by the
// i18n catalog; nothing in this package depends on it.
const (
	KeyRosary           = "ROSARY"
	KeyDivineMercy      = "DIVINE_MERCY"
	KeyDivineMercyFull  = "DIVINE_MERCY_FULL"
	KeyConcluding       = "CONCLUDING"
	KeyLitany           = "PRAY.LITANY"
	PictureDivineMercy  = "dm"
	prayLetUsPray       = "PRAY.LUP"
	praySign            = "PRAY.SIGN"
	prayOurFatherV      = "PRAY.OUR_FATHER_V"
	prayOurFatherR      = "PRAY.OUR_FATHER_R"
	prayHailMaryV       = "PRAY.HAIL_MARY_V"
	prayHailMaryR       = "PRAY.HAIL_MARY_R"
	prayCreedT          = "PRAY.CREED_T"
	prayCreedR          = "PRAY.CREED_R"
	prayDoxologyV       = "PRAY.DOXOLOGY_V"
	prayDoxologyR       = "PRAY.DOXOLOGY_R"
	prayFatimaT         = "PRAY.FATIMA_T"
	prayFatimaR         = "PRAY.FATIMA_R"
	prayEternalFatherR  = "PRAY.ETERNAL_FATHER_R"
	prayForTheV         = "PRAY.FOR_THE_V"
	prayForTheR         = "PRAY.FOR_THE_R"
	prayHolyGodR        = "PRAY.HOLY_GOD_R"
	prayHaveMercy       = "PRAY.R_HAVE"
	prayPrayForUs       = "PRAY.R_PRAY"
	litanyPrefix        = "PRAY.LITANY_CONT."
	litanyInvocations   = 50
	hailHolyQueenInvocs = 5
)

// Forward-navigation labels.
const (
	NextBegin    = "BEGIN"
	NextContinue = "CONTINUE"
	NextFinish   = "FINISH"
)
