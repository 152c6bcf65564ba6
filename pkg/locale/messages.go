package locale

type Key string

const (
	KeyWelcome          Key = "welcome"
	KeyMainMenu         Key = "main_menu"
	KeyBookingStart     Key = "booking_start"
	KeyAskContact       Key = "ask_contact"
	KeyAskResource      Key = "ask_resource"
	KeyAskPartySize     Key = "ask_party_size"
	KeyAskDate          Key = "ask_date"
	KeyAskTime          Key = "ask_time"
	KeyConfirmSummary   Key = "confirm_summary"
	KeyBookingComplete  Key = "booking_complete"
	KeyBookingCancelled Key = "booking_cancelled"
	KeyInvalidContact   Key = "invalid_contact"
	KeyInvalidPartySize Key = "invalid_party_size"
	KeyInvalidDate      Key = "invalid_date"
	KeyInvalidTime      Key = "invalid_time"
	KeyInvalidConfirm   Key = "invalid_confirm"
	KeyCapacityFull     Key = "capacity_full"
	KeyAlternatives     Key = "alternatives"
	KeyNoAlternatives   Key = "no_alternatives"
	KeyInquiryStart     Key = "inquiry_start"
	KeyInquiryContact   Key = "inquiry_contact"
	KeyInquiryTopic     Key = "inquiry_topic"
	KeyInquiryComplete  Key = "inquiry_complete"
	KeyReminder         Key = "reminder"
	KeyApology          Key = "apology"
	KeyUnknownOption    Key = "unknown_option"
	KeyFAQLocation      Key = "faq_location"
	KeyFAQPricing       Key = "faq_pricing"
)

var messages = map[Language]map[Key]string{
	English: {
		KeyWelcome:      "🌊 Al Bahr Sea Tours\n\nWelcome to Oman's premier sea adventure company! 🚤\n\nPlease choose your preferred language:",
		KeyMainMenu:     "Choose your sea adventure: 🗺️",
		KeyBookingStart: "📝 Let's book your tour! 🎫\n\nFirst, please send me your full name.\n\nExample: Ahmed Al Harthy",
		KeyAskContact:   "Perfect, {name}! 👋\n\nNow please send me your phone number.\n\nExample: 91234567",
		KeyAskResource:  "Great {name}! Which tour would you like to book?",
		KeyAskPartySize: "👥 How many guests will be joining for {resource}?\n\nPlease send the number. Examples: 2, 4, 6",
		KeyAskDate:      "📅 Perfect! {partySize} guests.\n\nPlease send your preferred date.\n\nExamples: Tomorrow, Friday, 2024-12-25",
		KeyAskTime:      "🕒 {date} for {resource}.\n\nChoose your preferred departure time:",
		KeyConfirmSummary: "📋 Booking summary:\n\n👤 Name: {name}\n📞 Contact: {contact}\n🚤 Tour: {resource}\n👥 Guests: {partySize}\n📅 Date: {date}\n🕒 Time: {time}\n💰 Total: {price} OMR\n\nConfirm this booking?",
		KeyBookingComplete: "🎉 Booking confirmed! ✅\n\nThank you {name}! Your {resource} tour is booked for {date} at {time}, {partySize} guests.\n\n💰 Total: {price} OMR\n\nWe will send you a reminder the day before. 🌊",
		KeyBookingCancelled: "Your booking has been cancelled. The reserved seats were released. Send \"hi\" anytime to start again. 🌊",
		KeyInvalidContact:   "That doesn't look like a valid phone number. Please send it again, e.g. 91234567",
		KeyInvalidPartySize: "Please enter a valid number of guests (e.g., 2, 4, 6)",
		KeyInvalidDate:      "I couldn't understand that date. Try: Tomorrow, Friday, or 2024-12-25",
		KeyInvalidTime:      "Please choose one of the listed departure times.",
		KeyInvalidConfirm:   "Please confirm or cancel using the buttons.",
		KeyCapacityFull:     "😔 Sorry, {resource} on {date} at {time} only has {remaining} seats left.",
		KeyAlternatives:     "Nearby departures with room for your group:\n{options}\nPlease send a new date to continue.",
		KeyNoAlternatives:   "No open departures found in the next {days} days. Please send another date to try a different period.",
		KeyInquiryStart:     "💬 Happy to help! First, please send me your full name.",
		KeyInquiryContact:   "Thanks {name}! What is the best phone number to reach you?",
		KeyInquiryTopic:     "What would you like to know about our tours?",
		KeyInquiryComplete:  "Thank you {name}! Our team will get back to you within one hour. 🌊",
		KeyReminder:         "⏰ Reminder: your {resource} tour is tomorrow, {date} at {time} for {partySize} guests. Check-in 30 minutes before departure at Marina Bandar Al Rowdha. 🚤",
		KeyApology:          "Sorry, something went wrong on our side. Let's continue from the menu. 📋",
		KeyUnknownOption:    "Sorry, I didn't understand that option. Please select from the menu. 📋",
		KeyFAQLocation:      "📍 Our Location: 🌊\n\nAl Bahr Sea Tours\nMarina Bandar Al Rowdha\nMuscat, Oman\n\n⏰ Opening Hours: 7:00 AM - 7:00 PM Daily",
		KeyFAQPricing:       "💰 Tour Prices:\n\n🐬 Dolphin Watching: 25 OMR per guest\n🤿 Snorkeling: 35 OMR per guest\n⛵ Dhow Cruise: 40 OMR per guest\n🎣 Fishing Trip: 50 OMR per guest\n\n👨‍👩‍👧‍👦 Groups of 4+: 10% discount",
	},
	Arabic: {
		KeyWelcome:      "🌊 جولات البحر\n\nمرحباً بكم في شركة عُمان الرائدة في مغامرات البحر! 🚤\n\nالرجاء اختيار اللغة المفضلة:",
		KeyMainMenu:     "اختر مغامرتك البحرية: 🗺️",
		KeyBookingStart: "📝 لنحجز جولتك! 🎫\n\nأولاً، الرجاء إرسال الاسم الكامل.\n\nمثال: أحمد الحارثي",
		KeyAskContact:   "ممتاز {name}! 👋\n\nالآن الرجاء إرسال رقم الهاتف.\n\nمثال: 91234567",
		KeyAskResource:  "رائع {name}! أي جولة تريد حجزها؟",
		KeyAskPartySize: "👥 كم عدد الضيوف لجولة {resource}؟\n\nالرجاء إرسال الرقم. أمثلة: ٢، ٤، ٦",
		KeyAskDate:      "📅 ممتاز! {partySize} ضيوف.\n\nالرجاء إرسال التاريخ المفضل.\n\nأمثلة: غداً، الجمعة، 2024-12-25",
		KeyAskTime:      "🕒 {date} لجولة {resource}.\n\nاختر وقت المغادرة المفضل:",
		KeyConfirmSummary: "📋 ملخص الحجز:\n\n👤 الاسم: {name}\n📞 الاتصال: {contact}\n🚤 الجولة: {resource}\n👥 الضيوف: {partySize}\n📅 التاريخ: {date}\n🕒 الوقت: {time}\n💰 المجموع: {price} ريال\n\nهل تؤكد الحجز؟",
		KeyBookingComplete: "🎉 تم تأكيد الحجز! ✅\n\nشكراً لك {name}! تم حجز جولة {resource} بتاريخ {date} الساعة {time} لعدد {partySize} ضيوف.\n\n💰 المجموع: {price} ريال\n\nسنرسل لك تذكيراً قبل الموعد بيوم. 🌊",
		KeyBookingCancelled: "تم إلغاء حجزك وتحرير المقاعد المحجوزة. أرسل \"مرحبا\" للبدء من جديد. 🌊",
		KeyInvalidContact:   "لا يبدو هذا رقم هاتف صحيحاً. الرجاء إرساله مرة أخرى، مثال: 91234567",
		KeyInvalidPartySize: "الرجاء إدخال عدد صحيح للضيوف (مثال: ٢، ٤، ٦)",
		KeyInvalidDate:      "لم أفهم هذا التاريخ. جرّب: غداً، الجمعة، أو 2024-12-25",
		KeyInvalidTime:      "الرجاء اختيار أحد أوقات المغادرة المعروضة.",
		KeyInvalidConfirm:   "الرجاء التأكيد أو الإلغاء باستخدام الأزرار.",
		KeyCapacityFull:     "😔 عذراً، جولة {resource} بتاريخ {date} الساعة {time} تبقى فيها {remaining} مقاعد فقط.",
		KeyAlternatives:     "مواعيد قريبة متاحة لمجموعتك:\n{options}\nالرجاء إرسال تاريخ جديد للمتابعة.",
		KeyNoAlternatives:   "لا توجد مواعيد متاحة خلال {days} يوماً. الرجاء إرسال تاريخ آخر.",
		KeyInquiryStart:     "💬 يسعدنا مساعدتك! أولاً، الرجاء إرسال الاسم الكامل.",
		KeyInquiryContact:   "شكراً {name}! ما هو أفضل رقم هاتف للتواصل معك؟",
		KeyInquiryTopic:     "ماذا تريد أن تعرف عن جولاتنا؟",
		KeyInquiryComplete:  "شكراً لك {name}! سيتواصل معك فريقنا خلال ساعة واحدة. 🌊",
		KeyReminder:         "⏰ تذكير: جولة {resource} غداً، {date} الساعة {time} لعدد {partySize} ضيوف. التسجيل قبل ٣٠ دقيقة من المغادرة في مارينا بندر الروضة. 🚤",
		KeyApology:          "عذراً، حدث خطأ من جانبنا. لنتابع من القائمة. 📋",
		KeyUnknownOption:    "عذراً، لم أفهم هذا الخيار. الرجاء الاختيار من القائمة. 📋",
		KeyFAQLocation:      "📍 موقعنا: 🌊\n\nجولات البحر\nمارينا بندر الروضة\nمسقط، عُمان\n\n⏰ ساعات العمل: ٧ صباحاً - ٧ مساءً يومياً",
		KeyFAQPricing:       "💰 أسعار الجولات:\n\n🐬 مشاهدة الدلافين: ٢٥ ريال للضيف\n🤿 الغوص بالسنوركل: ٣٥ ريال للضيف\n⛵ رحلة الداو: ٤٠ ريال للضيف\n🎣 رحلة صيد: ٥٠ ريال للضيف\n\n👨‍👩‍👧‍👦 مجموعات ٤+: خصم ١٠٪",
	},
}
