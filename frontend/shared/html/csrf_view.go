package html

import "strconv"

// Names shared by the CSRF middleware and the pages it protects.
const (
	CSRFCookie = "printshop_csrf"
	CSRFField  = "_csrf"
)

// CSRFFormScript copies the CSRF cookie into every POST form at submit time,
// including forms whose rows were added after the page loaded.
func CSRFFormScript() string {
	return `<script>
document.addEventListener("submit", function (ev) {
  var form = ev.target;
  if ((form.method || "").toLowerCase() !== "post") return;
  var m = document.cookie.match(new RegExp("(?:^|; )" + ` + strconv.Quote(CSRFCookie) + ` + "=([^;]*)"));
  if (!m) return;
  var field = form.elements.namedItem(` + strconv.Quote(CSRFField) + `);
  if (!field) {
    field = document.createElement("input");
    field.type = "hidden";
    field.name = ` + strconv.Quote(CSRFField) + `;
    form.appendChild(field);
  }
  field.value = decodeURIComponent(m[1]);
}, true);
</script>`
}
