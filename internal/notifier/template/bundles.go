// internal/notifier/template/bundles.go
package template

import "admissions-notifier/internal/models"

// Placeholder names available to every bundle: guardianName, studentName,
// applicationId, leadId, organizationName, organizationPhone, plus whatever
// context the event producer supplies (grade, academicYear,
// enrollmentDeadline, testDate, interviewDate, waitlistPosition, ...).
// Unknown placeholders render verbatim, so optional context degrades
// gracefully instead of failing the notification.
func defaultBundles() map[models.Stage]*Bundle {
	bundles := []*Bundle{
		{
			Stage: models.StageLeadCreated,
			Title: map[string]string{
				"en": "Welcome to {organizationName}",
				"ar": "مرحباً بكم في {organizationName}",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, thank you for your interest in {organizationName} for {studentName}. Our admissions team will contact you shortly. For questions, call {organizationPhone}.",
				"ar": "عزيزي {guardianName}، شكراً لاهتمامكم بـ{organizationName} من أجل {studentName}. سيتواصل معكم فريق القبول قريباً. للاستفسار اتصلوا على {organizationPhone}.",
			},
			EmailSubject: map[string]string{
				"en": "Welcome to {organizationName} Admissions",
				"ar": "مرحباً بكم في قبول {organizationName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: thank you for your inquiry for {studentName}. We will be in touch soon.",
				"ar": "{organizationName}: شكراً لاستفساركم بخصوص {studentName}. سنتواصل معكم قريباً.",
			},
			Channels: []models.Channel{models.ChannelInApp, models.ChannelEmail},
			Priority: models.PriorityMedium,
		},
		{
			Stage: models.StageApplicationSubmitted,
			Title: map[string]string{
				"en": "Application Received for {studentName}",
				"ar": "تم استلام طلب {studentName}",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, the application for {studentName} has been submitted successfully. Your application reference is {applicationId}. We will notify you at every step of the review.",
				"ar": "عزيزي {guardianName}، تم تقديم طلب {studentName} بنجاح. رقم الطلب المرجعي هو {applicationId}. سنخطركم بكل خطوة من خطوات المراجعة.",
			},
			EmailSubject: map[string]string{
				"en": "Application Submitted — {studentName}",
				"ar": "تم تقديم الطلب — {studentName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: application {applicationId} for {studentName} received.",
				"ar": "{organizationName}: تم استلام الطلب {applicationId} الخاص بـ{studentName}.",
			},
			Channels: []models.Channel{models.ChannelInApp, models.ChannelEmail},
			Priority: models.PriorityMedium,
		},
		{
			Stage: models.StageDocumentsPending,
			Title: map[string]string{
				"en": "Documents Required for {studentName}",
				"ar": "مستندات مطلوبة لطلب {studentName}",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, the application for {studentName} is missing required documents: {documentList}. Please upload them to avoid delays in processing.",
				"ar": "عزيزي {guardianName}، طلب {studentName} ينقصه المستندات المطلوبة التالية: {documentList}. يرجى رفعها لتجنب تأخير المعالجة.",
			},
			EmailSubject: map[string]string{
				"en": "Action Required: Missing Documents — {studentName}",
				"ar": "إجراء مطلوب: مستندات ناقصة — {studentName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: documents are missing for {studentName}'s application. Please check your portal.",
				"ar": "{organizationName}: توجد مستندات ناقصة في طلب {studentName}. يرجى مراجعة البوابة.",
			},
			Channels: []models.Channel{models.ChannelInApp, models.ChannelEmail, models.ChannelSMS},
			Priority: models.PriorityHigh,
		},
		{
			Stage: models.StageDocumentsComplete,
			Title: map[string]string{
				"en": "Documents Complete for {studentName}",
				"ar": "اكتملت مستندات {studentName}",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, all required documents for {studentName} have been received. The application now moves to the assessment stage.",
				"ar": "عزيزي {guardianName}، تم استلام جميع المستندات المطلوبة لطلب {studentName}. ينتقل الطلب الآن إلى مرحلة التقييم.",
			},
			EmailSubject: map[string]string{
				"en": "Documents Complete — {studentName}",
				"ar": "اكتملت المستندات — {studentName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: all documents received for {studentName}.",
				"ar": "{organizationName}: تم استلام جميع مستندات {studentName}.",
			},
			Channels: []models.Channel{models.ChannelInApp, models.ChannelEmail},
			Priority: models.PriorityLow,
		},
		{
			Stage: models.StageTestScheduled,
			Title: map[string]string{
				"en": "Entrance Test Scheduled for {studentName}",
				"ar": "تم تحديد موعد اختبار القبول لـ{studentName}",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, the entrance test for {studentName} is scheduled on {testDate} at {testTime}, {location}. Please arrive 15 minutes early.",
				"ar": "عزيزي {guardianName}، تم تحديد موعد اختبار القبول لـ{studentName} يوم {testDate} الساعة {testTime} في {location}. يرجى الحضور قبل الموعد بخمس عشرة دقيقة.",
			},
			EmailSubject: map[string]string{
				"en": "Entrance Test Appointment — {studentName}",
				"ar": "موعد اختبار القبول — {studentName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: entrance test for {studentName} on {testDate} at {testTime}, {location}.",
				"ar": "{organizationName}: اختبار القبول لـ{studentName} يوم {testDate} الساعة {testTime} في {location}.",
			},
			Channels: []models.Channel{models.ChannelInApp, models.ChannelEmail, models.ChannelSMS},
			Priority: models.PriorityHigh,
		},
		{
			Stage: models.StageTestCompleted,
			Title: map[string]string{
				"en": "Entrance Test Completed — {studentName}",
				"ar": "اكتمل اختبار القبول — {studentName}",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, {studentName} has completed the entrance test. Results will be shared with the admissions committee as part of the review.",
				"ar": "عزيزي {guardianName}، أكمل {studentName} اختبار القبول. ستُعرض النتائج على لجنة القبول ضمن مراجعة الطلب.",
			},
			EmailSubject: map[string]string{
				"en": "Entrance Test Completed — {studentName}",
				"ar": "اكتمل اختبار القبول — {studentName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: {studentName} completed the entrance test.",
				"ar": "{organizationName}: أكمل {studentName} اختبار القبول.",
			},
			Channels: []models.Channel{models.ChannelInApp, models.ChannelEmail},
			Priority: models.PriorityMedium,
		},
		{
			Stage: models.StageInterviewScheduled,
			Title: map[string]string{
				"en": "Interview Scheduled for {studentName}",
				"ar": "تم تحديد موعد مقابلة {studentName}",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, the admissions interview for {studentName} is scheduled on {interviewDate} at {interviewTime}, {location}. Both guardians are welcome to attend.",
				"ar": "عزيزي {guardianName}، تم تحديد موعد مقابلة القبول لـ{studentName} يوم {interviewDate} الساعة {interviewTime} في {location}. نرحب بحضور ولي الأمر.",
			},
			EmailSubject: map[string]string{
				"en": "Interview Appointment — {studentName}",
				"ar": "موعد المقابلة — {studentName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: interview for {studentName} on {interviewDate} at {interviewTime}, {location}.",
				"ar": "{organizationName}: مقابلة {studentName} يوم {interviewDate} الساعة {interviewTime} في {location}.",
			},
			Channels: []models.Channel{models.ChannelInApp, models.ChannelEmail, models.ChannelSMS},
			Priority: models.PriorityHigh,
		},
		{
			Stage: models.StageInterviewCompleted,
			Title: map[string]string{
				"en": "Interview Completed — {studentName}",
				"ar": "اكتملت مقابلة {studentName}",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, the interview for {studentName} is complete. The application now goes to the admissions committee for a decision.",
				"ar": "عزيزي {guardianName}، اكتملت مقابلة {studentName}. يُحال الطلب الآن إلى لجنة القبول لاتخاذ القرار.",
			},
			EmailSubject: map[string]string{
				"en": "Interview Completed — {studentName}",
				"ar": "اكتملت المقابلة — {studentName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: interview completed for {studentName}.",
				"ar": "{organizationName}: اكتملت مقابلة {studentName}.",
			},
			Channels: []models.Channel{models.ChannelInApp, models.ChannelEmail},
			Priority: models.PriorityMedium,
		},
		{
			Stage: models.StageUnderReview,
			Title: map[string]string{
				"en": "Application Under Review — {studentName}",
				"ar": "الطلب قيد المراجعة — {studentName}",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, the application for {studentName} is now under review by the admissions committee. No action is needed from you at this stage.",
				"ar": "عزيزي {guardianName}، طلب {studentName} الآن قيد المراجعة لدى لجنة القبول. لا يلزمكم أي إجراء في هذه المرحلة.",
			},
			EmailSubject: map[string]string{
				"en": "Application Under Review — {studentName}",
				"ar": "الطلب قيد المراجعة — {studentName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: application for {studentName} is under review.",
				"ar": "{organizationName}: طلب {studentName} قيد المراجعة.",
			},
			Channels: []models.Channel{models.ChannelInApp},
			Priority: models.PriorityLow,
		},
		{
			Stage: models.StageDecisionAccepted,
			Title: map[string]string{
				"en": "Congratulations! {studentName} Has Been Accepted",
				"ar": "تهانينا! تم قبول {studentName}",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, we are delighted to inform you that {studentName} has been accepted to {organizationName} for {grade}, academic year {academicYear}. Please complete the enrollment steps by {enrollmentDeadline} to secure the seat. For assistance, call {organizationPhone}.",
				"ar": "عزيزي {guardianName}، يسعدنا إبلاغكم بقبول {studentName} في {organizationName} للصف {grade} للعام الدراسي {academicYear}. يرجى استكمال خطوات التسجيل قبل {enrollmentDeadline} لضمان المقعد. للمساعدة اتصلوا على {organizationPhone}.",
			},
			EmailSubject: map[string]string{
				"en": "Congratulations — Admission Decision for {studentName}",
				"ar": "تهانينا — قرار القبول الخاص بـ{studentName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: {studentName} has been ACCEPTED for {grade}, {academicYear}. Enroll by {enrollmentDeadline}.",
				"ar": "{organizationName}: تم قبول {studentName} في الصف {grade} للعام {academicYear}. سجلوا قبل {enrollmentDeadline}.",
			},
			Channels: []models.Channel{models.ChannelInApp, models.ChannelEmail, models.ChannelSMS},
			Priority: models.PriorityHigh,
		},
		{
			Stage: models.StageDecisionWaitlisted,
			Title: map[string]string{
				"en": "Waitlist Decision for {studentName}",
				"ar": "قرار قائمة الانتظار لـ{studentName}",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, {studentName} has been placed on the waitlist at position {waitlistPosition}. We will notify you immediately should a seat become available.",
				"ar": "عزيزي {guardianName}، تم وضع {studentName} في قائمة الانتظار في المرتبة {waitlistPosition}. سنخطركم فور توفر مقعد.",
			},
			EmailSubject: map[string]string{
				"en": "Admission Decision — Waitlist — {studentName}",
				"ar": "قرار القبول — قائمة الانتظار — {studentName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: {studentName} is waitlisted at position {waitlistPosition}.",
				"ar": "{organizationName}: {studentName} في قائمة الانتظار بالمرتبة {waitlistPosition}.",
			},
			Channels: []models.Channel{models.ChannelInApp, models.ChannelEmail},
			Priority: models.PriorityMedium,
		},
		{
			Stage: models.StageDecisionRejected,
			Title: map[string]string{
				"en": "Admission Decision for {studentName}",
				"ar": "قرار القبول الخاص بـ{studentName}",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, after careful consideration we are unable to offer {studentName} a place for {academicYear}. We thank you for your interest in {organizationName} and encourage you to apply again next year.",
				"ar": "عزيزي {guardianName}، بعد دراسة متأنية يؤسفنا عدم تمكننا من منح {studentName} مقعداً للعام الدراسي {academicYear}. نشكر اهتمامكم بـ{organizationName} وندعوكم للتقديم مجدداً العام المقبل.",
			},
			EmailSubject: map[string]string{
				"en": "Admission Decision — {studentName}",
				"ar": "قرار القبول — {studentName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: an admission decision for {studentName} is available in your portal.",
				"ar": "{organizationName}: قرار القبول الخاص بـ{studentName} متاح في البوابة.",
			},
			Channels: []models.Channel{models.ChannelInApp, models.ChannelEmail},
			Priority: models.PriorityMedium,
		},
		{
			Stage: models.StageEnrollmentComplete,
			Title: map[string]string{
				"en": "Enrollment Complete — Welcome, {studentName}!",
				"ar": "اكتمل التسجيل — أهلاً بك يا {studentName}!",
			},
			Body: map[string]string{
				"en": "Dear {guardianName}, enrollment for {studentName} is complete for {grade}, {academicYear}. Welcome to the {organizationName} family! Orientation details will follow by email.",
				"ar": "عزيزي {guardianName}، اكتمل تسجيل {studentName} في الصف {grade} للعام {academicYear}. أهلاً بكم في أسرة {organizationName}! ستصلكم تفاصيل اليوم التعريفي عبر البريد الإلكتروني.",
			},
			EmailSubject: map[string]string{
				"en": "Enrollment Confirmed — {studentName}",
				"ar": "تأكيد التسجيل — {studentName}",
			},
			SMSText: map[string]string{
				"en": "{organizationName}: enrollment complete for {studentName}. Welcome!",
				"ar": "{organizationName}: اكتمل تسجيل {studentName}. أهلاً بكم!",
			},
			Channels: []models.Channel{models.ChannelInApp, models.ChannelEmail, models.ChannelSMS},
			Priority: models.PriorityHigh,
		},
	}

	out := make(map[models.Stage]*Bundle, len(bundles))
	for _, b := range bundles {
		out[b.Stage] = b
	}
	return out
}
