package apperr

// Mongolian user-facing messages.
const (
	MsgInternal        = "Серверийн алдаа гарлаа"
	MsgInvalidBody     = "Хүсэлтийн өгөгдөл буруу байна"
	MsgInvalidID       = "ID буруу байна"
	MsgTooManyRequests = "Хэт олон хүсэлт илгээлээ. Түр хүлээгээд дахин оролдоно уу."
	MsgRouteNotFound   = "Хуудас олдсонгүй"

	// Authentication
	MsgLoginRequired       = "Нэвтэрсэн байх шаардлагатай"
	MsgInvalidCredential   = "Нэвтрэх мэдээлэл буруу байна"
	MsgWrongEmailPassword  = "Имэйл эсвэл нууц үг буруу байна"
	MsgEmailPasswordNeeded = "Имэйл болон нууц үг заавал хэрэгтэй"
	MsgEmailTaken          = "Энэ имэйл хаяг аль хэдийн бүртгэгдсэн байна"
	MsgWeakPassword        = "Нууц үг сул байна. Илүү хүчтэй нууц үг сонгоно уу."
	MsgLocalAuthDisabled   = "Энэ серверт бүртгэл идэвхгүй байна"

	// Authorization
	MsgRoleMissing       = "Хэрэглэгчийн эрх тодорхойгүй байна"
	MsgAdminOnly         = "Зөвхөн админ энэ мэдээллийг харах эрхтэй"
	MsgCreatorCannotBuy  = "Дизайнер хэрэглэгч худалдан авалт хийх боломжгүй"
	MsgCreateForbidden   = "Зөвхөн дизайнер загвар байршуулах эрхтэй"
	MsgStatusAdminOnly   = "Зөвхөн админ загварын төлөв өөрчлөх эрхтэй"
	MsgEditForbidden     = "Зөвхөн өөрийн загварыг засах эрхтэй"
	MsgDeleteForbidden   = "Энэ загварыг устгах эрхгүй байна"
	MsgDownloadForbidden = "Энэ загварыг татах эрхгүй байна. Эхлээд худалдаж аваарай."

	// Templates
	MsgTemplateNotFound  = "Загвар олдсонгүй"
	MsgInvalidStatus     = "Загварын төлөв буруу байна"
	MsgStatusFinal       = "Энэ загварын төлөвийг өөрчлөх боломжгүй"
	MsgNothingToUpdate   = "Шинэчлэх өгөгдөл алга"
	MsgInvalidSort       = "Эрэмбэлэх талбар буруу байна"
	MsgContentRejected   = "Загварын мэдээлэл зохисгүй агуулгатай байна"
	MsgContactNotAllowed = "Тайлбарт холбоо барих мэдээлэл оруулахыг зөвшөөрөхгүй"

	// Commerce
	MsgTemplateIDRequired = "template_id шаардлагатай"
	MsgNotForSale         = "Энэ загвар худалдах эрхгүй байна"
	MsgAlreadyInCart      = "Загвар сагсанд аль хэдийн байна"
	MsgAlreadyPurchased   = "Та энэ загварыг аль хэдийн худалдаж авсан байна"
	MsgOwnTemplate        = "Өөрийн загварыг худалдаж авах боломжгүй"
	MsgNoCanvaLink        = "Энэ загварт татах холбоос тохируулаагүй байна"
)
