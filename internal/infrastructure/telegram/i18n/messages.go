package i18n

// Login handshake messages

// MsgLoginPrompt is shown with the four code buttons after /start <token>
func MsgLoginPrompt(lang Lang) string {
	switch lang {
	case RU:
		return "🔐 <b>Вход на akhmads.net</b>\n\n" +
			"На сайте показан четырёхзначный код.\n" +
			"Нажмите на него ниже, чтобы подтвердить вход."
	case UZ:
		return "🔐 <b>akhmads.net saytiga kirish</b>\n\n" +
			"Saytda to'rt xonali kod ko'rsatilgan.\n" +
			"Kirishni tasdiqlash uchun uni quyidan tanlang."
	default:
		return "🔐 <b>Sign in to akhmads.net</b>\n\n" +
			"The website is showing a four-digit code.\n" +
			"Tap it below to confirm the sign-in."
	}
}

// MsgLoginSuccess is shown after the correct code is tapped
func MsgLoginSuccess(lang Lang) string {
	switch lang {
	case RU:
		return "✅ <b>Вход подтверждён</b>\n\n" +
			"Можете вернуться на сайт — вы уже вошли."
	case UZ:
		return "✅ <b>Kirish tasdiqlandi</b>\n\n" +
			"Saytga qaytishingiz mumkin — siz tizimga kirdingiz."
	default:
		return "✅ <b>Sign-in confirmed</b>\n\n" +
			"You can return to the website — you are signed in."
	}
}

// MsgLoginWrongCode is shown when a non-matching code is tapped. The session
// stays pending so the user may try again.
func MsgLoginWrongCode(lang Lang) string {
	switch lang {
	case RU:
		return "Неверный код. Сверьтесь с сайтом и попробуйте ещё раз."
	case UZ:
		return "Kod noto'g'ri. Saytdagi kod bilan solishtirib, qayta urinib ko'ring."
	default:
		return "Wrong code. Check the website and try again."
	}
}

// MsgLoginExpired is shown when the token is unknown or the session timed out
func MsgLoginExpired(lang Lang) string {
	switch lang {
	case RU:
		return "⏱ <b>Сессия входа истекла</b>\n\n" +
			"Запросите новый вход на сайте."
	case UZ:
		return "⏱ <b>Kirish sessiyasi muddati tugadi</b>\n\n" +
			"Saytda qaytadan kirishni so'rang."
	default:
		return "⏱ <b>Login session expired</b>\n\n" +
			"Request a new sign-in from the website."
	}
}

// MsgLoginConsumed is shown when the session was already authorized
func MsgLoginConsumed(lang Lang) string {
	switch lang {
	case RU:
		return "Этот вход уже подтверждён."
	case UZ:
		return "Bu kirish allaqachon tasdiqlangan."
	default:
		return "This sign-in has already been confirmed."
	}
}

// MsgLoginBanned is shown when the account is banned from the platform
func MsgLoginBanned(lang Lang) string {
	switch lang {
	case RU:
		return "🚫 <b>Доступ заблокирован</b>\n\n" +
			"Ваш аккаунт заблокирован. Обратитесь в поддержку."
	case UZ:
		return "🚫 <b>Kirish bloklangan</b>\n\n" +
			"Hisobingiz bloklangan. Qo'llab-quvvatlash xizmatiga murojaat qiling."
	default:
		return "🚫 <b>Access blocked</b>\n\n" +
			"Your account is banned. Contact support."
	}
}

// MsgWelcome is shown on a bare /start without a login token
func MsgWelcome(lang Lang) string {
	switch lang {
	case RU:
		return "👋 <b>akhmads.net</b>\n\n" +
			"Рекламная сеть для Telegram-ботов.\n" +
			"Этот бот подтверждает вход на сайт и присылает уведомления о кампаниях и выплатах.\n\n" +
			"Начните вход на сайте — он откроет этого бота с кодом подтверждения."
	case UZ:
		return "👋 <b>akhmads.net</b>\n\n" +
			"Telegram botlar uchun reklama tarmog'i.\n" +
			"Bu bot saytga kirishni tasdiqlaydi va kampaniyalar hamda to'lovlar haqida xabar beradi.\n\n" +
			"Kirishni saytda boshlang — u bu botni tasdiqlash kodi bilan ochadi."
	default:
		return "👋 <b>akhmads.net</b>\n\n" +
			"An advertising network for Telegram bots.\n" +
			"This bot confirms website sign-ins and delivers campaign and payout notifications.\n\n" +
			"Start a sign-in on the website — it will open this bot with a confirmation code."
	}
}

// MsgError is a generic failure answer for callback taps
func MsgError(lang Lang) string {
	switch lang {
	case RU:
		return "Произошла ошибка, попробуйте позже."
	case UZ:
		return "Xatolik yuz berdi, keyinroq urinib ko'ring."
	default:
		return "Something went wrong, try again later."
	}
}
