package mailer

import (
	"fmt"
	"strings"

	"vnnews/internal/domain/entity"
)

// subjectPrefix is stamped on every outgoing subject line.
const subjectPrefix = "[VnNews] "

type message struct {
	subject string
	body    string
}

func passwordResetMessage(site entity.Site, baseURL, token string) message {
	link := fmt.Sprintf("%s/auth/reset-password?token=%s", baseURL, token)
	if site == entity.SiteEN {
		return message{
			subject: subjectPrefix + "Password reset request",
			body: "We received a request to reset your password.\n\n" +
				"Open the link below within one hour to choose a new password:\n" +
				link + "\n\n" +
				"If you did not request this, you can safely ignore this email.",
		}
	}
	return message{
		subject: subjectPrefix + "Yêu cầu đặt lại mật khẩu",
		body: "Chúng tôi đã nhận được yêu cầu đặt lại mật khẩu của bạn.\n\n" +
			"Vui lòng mở liên kết dưới đây trong vòng một giờ để chọn mật khẩu mới:\n" +
			link + "\n\n" +
			"Nếu bạn không yêu cầu, hãy bỏ qua email này.",
	}
}

func subscriptionMessage(site entity.Site, baseURL, unsubscribeToken string) message {
	link := unsubscribeLink(baseURL, unsubscribeToken)
	if site == entity.SiteEN {
		return message{
			subject: subjectPrefix + "Newsletter subscription confirmed",
			body: "Thank you for subscribing to the VnNews newsletter.\n\n" +
				"You will receive a digest of our latest articles.\n" +
				"To unsubscribe at any time, open:\n" + link,
		}
	}
	return message{
		subject: subjectPrefix + "Đăng ký nhận bản tin thành công",
		body: "Cảm ơn bạn đã đăng ký nhận bản tin VnNews.\n\n" +
			"Bạn sẽ nhận được tổng hợp các bài viết mới nhất.\n" +
			"Để hủy đăng ký bất cứ lúc nào, hãy mở:\n" + link,
	}
}

func digestMessage(site entity.Site, baseURL, unsubscribeToken string, articles []*entity.Article) message {
	var b strings.Builder
	for _, a := range articles {
		fmt.Fprintf(&b, "- %s\n  %s/articles/%s\n", a.Title, baseURL, a.Slug)
	}
	link := unsubscribeLink(baseURL, unsubscribeToken)

	if site == entity.SiteEN {
		return message{
			subject: subjectPrefix + "Your news digest",
			body: "The latest from VnNews:\n\n" + b.String() +
				"\nTo unsubscribe, open:\n" + link,
		}
	}
	return message{
		subject: subjectPrefix + "Bản tin mới nhất",
		body: "Tin mới nhất từ VnNews:\n\n" + b.String() +
			"\nĐể hủy đăng ký, hãy mở:\n" + link,
	}
}

func unsubscribeLink(baseURL, token string) string {
	return fmt.Sprintf("%s/newsletter/unsubscribe?token=%s", baseURL, token)
}
