package i18n

import (
	"fmt"
	"html"
)

// Moderation and payout notifications. Amounts arrive pre-formatted so the
// money layer keeps control of precision.

func MsgAdApproved(lang Lang, adTitle string) string {
	t := html.EscapeString(adTitle)
	switch lang {
	case RU:
		return fmt.Sprintf("✅ <b>Объявление одобрено</b>\n\n«%s» прошло модерацию и начнёт показы по расписанию.", t)
	case UZ:
		return fmt.Sprintf("✅ <b>E'lon tasdiqlandi</b>\n\n«%s» moderatsiyadan o'tdi va jadval bo'yicha ko'rsatila boshlaydi.", t)
	default:
		return fmt.Sprintf("✅ <b>Ad approved</b>\n\n\"%s\" passed review and will start delivering on schedule.", t)
	}
}

func MsgAdRejected(lang Lang, adTitle, reason string) string {
	t := html.EscapeString(adTitle)
	r := html.EscapeString(reason)
	switch lang {
	case RU:
		return fmt.Sprintf("❌ <b>Объявление отклонено</b>\n\n«%s»\nПричина: %s\n\nСредства возвращены на баланс.", t, r)
	case UZ:
		return fmt.Sprintf("❌ <b>E'lon rad etildi</b>\n\n«%s»\nSabab: %s\n\nMablag' balansingizga qaytarildi.", t, r)
	default:
		return fmt.Sprintf("❌ <b>Ad rejected</b>\n\n\"%s\"\nReason: %s\n\nFunds have been returned to your balance.", t, r)
	}
}

func MsgAdEditRequested(lang Lang, adTitle, reason string) string {
	t := html.EscapeString(adTitle)
	r := html.EscapeString(reason)
	switch lang {
	case RU:
		return fmt.Sprintf("✏️ <b>Требуются правки</b>\n\n«%s»\nКомментарий модератора: %s", t, r)
	case UZ:
		return fmt.Sprintf("✏️ <b>Tahrir talab qilinadi</b>\n\n«%s»\nModerator izohi: %s", t, r)
	default:
		return fmt.Sprintf("✏️ <b>Edits requested</b>\n\n\"%s\"\nModerator note: %s", t, r)
	}
}

func MsgAdCompleted(lang Lang, adTitle string, impressions int64) string {
	t := html.EscapeString(adTitle)
	switch lang {
	case RU:
		return fmt.Sprintf("🏁 <b>Кампания завершена</b>\n\n«%s» показана %d раз.", t, impressions)
	case UZ:
		return fmt.Sprintf("🏁 <b>Kampaniya yakunlandi</b>\n\n«%s» %d marta ko'rsatildi.", t, impressions)
	default:
		return fmt.Sprintf("🏁 <b>Campaign completed</b>\n\n\"%s\" was delivered %d times.", t, impressions)
	}
}

func MsgBotApproved(lang Lang, botUsername string) string {
	u := html.EscapeString(botUsername)
	switch lang {
	case RU:
		return fmt.Sprintf("✅ <b>Бот одобрен</b>\n\n@%s подключён к сети и может запрашивать рекламу.", u)
	case UZ:
		return fmt.Sprintf("✅ <b>Bot tasdiqlandi</b>\n\n@%s tarmoqqa ulandi va reklama so'rashi mumkin.", u)
	default:
		return fmt.Sprintf("✅ <b>Bot approved</b>\n\n@%s is connected to the network and may request ads.", u)
	}
}

func MsgBotRejected(lang Lang, botUsername, reason string) string {
	u := html.EscapeString(botUsername)
	r := html.EscapeString(reason)
	switch lang {
	case RU:
		return fmt.Sprintf("❌ <b>Бот отклонён</b>\n\n@%s\nПричина: %s", u, r)
	case UZ:
		return fmt.Sprintf("❌ <b>Bot rad etildi</b>\n\n@%s\nSabab: %s", u, r)
	default:
		return fmt.Sprintf("❌ <b>Bot rejected</b>\n\n@%s\nReason: %s", u, r)
	}
}

func MsgBotSuspended(lang Lang, botUsername, reason string) string {
	u := html.EscapeString(botUsername)
	r := html.EscapeString(reason)
	switch lang {
	case RU:
		return fmt.Sprintf("⛔️ <b>Бот приостановлен</b>\n\n@%s\nПричина: %s\n\nНакопленный доход остаётся на балансе.", u, r)
	case UZ:
		return fmt.Sprintf("⛔️ <b>Bot to'xtatildi</b>\n\n@%s\nSabab: %s\n\nYig'ilgan daromad balansingizda qoladi.", u, r)
	default:
		return fmt.Sprintf("⛔️ <b>Bot suspended</b>\n\n@%s\nReason: %s\n\nAccrued earnings stay on your balance.", u, r)
	}
}

func MsgDepositCredited(lang Lang, amount string) string {
	a := html.EscapeString(amount)
	switch lang {
	case RU:
		return fmt.Sprintf("💰 <b>Баланс пополнен</b>\n\nЗачислено: %s", a)
	case UZ:
		return fmt.Sprintf("💰 <b>Balans to'ldirildi</b>\n\nQo'shildi: %s", a)
	default:
		return fmt.Sprintf("💰 <b>Balance topped up</b>\n\nCredited: %s", a)
	}
}

func MsgWithdrawApproved(lang Lang, amount string) string {
	a := html.EscapeString(amount)
	switch lang {
	case RU:
		return fmt.Sprintf("📤 <b>Вывод одобрен</b>\n\nСумма %s отправлена на выплату.", a)
	case UZ:
		return fmt.Sprintf("📤 <b>Pul yechish tasdiqlandi</b>\n\n%s to'lovga yuborildi.", a)
	default:
		return fmt.Sprintf("📤 <b>Withdrawal approved</b>\n\n%s has been sent for payout.", a)
	}
}

func MsgWithdrawCompleted(lang Lang, amount, txHash string) string {
	a := html.EscapeString(amount)
	h := html.EscapeString(txHash)
	switch lang {
	case RU:
		return fmt.Sprintf("✅ <b>Вывод выполнен</b>\n\nСумма: %s\nТранзакция: <code>%s</code>", a, h)
	case UZ:
		return fmt.Sprintf("✅ <b>Pul yechish bajarildi</b>\n\nSumma: %s\nTranzaksiya: <code>%s</code>", a, h)
	default:
		return fmt.Sprintf("✅ <b>Withdrawal completed</b>\n\nAmount: %s\nTransaction: <code>%s</code>", a, h)
	}
}

func MsgWithdrawRejected(lang Lang, amount, reason string) string {
	a := html.EscapeString(amount)
	r := html.EscapeString(reason)
	switch lang {
	case RU:
		return fmt.Sprintf("❌ <b>Вывод отклонён</b>\n\nСумма %s возвращена на баланс.\nПричина: %s", a, r)
	case UZ:
		return fmt.Sprintf("❌ <b>Pul yechish rad etildi</b>\n\n%s balansingizga qaytarildi.\nSabab: %s", a, r)
	default:
		return fmt.Sprintf("❌ <b>Withdrawal rejected</b>\n\n%s has been returned to your balance.\nReason: %s", a, r)
	}
}
