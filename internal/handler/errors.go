package handler

// Client-facing error messages. Internal error details are never returned.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidLimit          = "Invalid limit parameter"
	ErrMsgMissingPathParam      = "Missing %s path parameter"

	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnavailableError   = "Server pusat tidak dapat dihubungi. Coba lagi nanti."
	ErrMsgBadGatewayError    = "Server pusat mengirim jawaban yang tidak dikenal."
	ErrMsgAuthFailedError    = "Login gagal. Periksa ID dan password."
	ErrMsgNotLoggedInError   = "Sesi berakhir. Silakan login kembali."
	ErrMsgIssueTokenFailed   = "Failed to issue session token"

	ErrMsgMissionNotFoundError  = "Misi tidak ditemukan"
	ErrMsgMissionLockedError    = "Misi masih terkunci"
	ErrMsgMissionNotActiveError = "Misi belum dimulai"
	ErrMsgTransitionError       = "Status misi tidak dapat diubah"
	ErrMsgInvalidUnitError      = "Satuan tidak dikenal"
	ErrMsgInvalidQuantityError  = "Jumlah harus lebih dari nol"
	ErrMsgSkinNotFoundError     = "Skin tidak ditemukan"
	ErrMsgSkinNotOwnedError     = "Skin belum dimiliki"
	ErrMsgSkinOwnedError        = "Skin sudah dimiliki"
	ErrMsgPlanNotFoundError     = "Rencana kerja tidak ditemukan"
	ErrMsgInvalidPlanError      = "Rencana kerja tidak valid"
	ErrMsgInvalidInputError     = "Data tidak lengkap"
)

// Success messages
const (
	MsgRegistered = "Registrasi berhasil. Silakan login."
	MsgLoggedOut  = "Sampai jumpa!"
	MsgPlanAdded  = "Rencana kerja disimpan"
)
