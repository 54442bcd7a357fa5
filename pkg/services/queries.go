package services

// Queries maps content query keys to GROQ.
var Queries = map[string]string{
	// Singleton page documents
	"site-settings":  `*[_type == "siteSettings"][0]`,
	"homepage":       `*[_type == "homepageContent"][0]`,
	"about":          `*[_type == "aboutPageContent"][0]`,
	"contact":        `*[_type == "contactPageContent"][0]`,
	"team-page":      `*[_type == "teamPageContent"][0]`,
	"resources-page": `*[_type == "resourcesPageContent"][0]`,
	"hero-section": `*[_type == "heroSection" && name == "homepage-hero"][0] {
    _id, name, slides, autoplay, autoplaySpeed
  }`,

	// News
	"news": `*[_type == "news"] | order(publishedAt desc) {
    _id, title, slug, excerpt, featuredImage, category, publishedAt, featured
  }`,
	"latest-news": `*[_type == "news"] | order(publishedAt desc) [0...3] {
    _id, title, slug, excerpt, featuredImage, category, publishedAt
  }`,
	"news-article": `*[_type == "news" && slug.current == $slug][0] {
    _id, title, slug, excerpt, featuredImage, content, category, tags,
    author->{ name, role, image },
    publishedAt
  }`,
	"news-slugs": `*[_type == "news" && defined(slug.current)] { "slug": slug.current }`,

	// Team
	"team-members": `*[_type == "teamMember" && active == true] | order(order asc) {
    _id, name, slug, role, department, image, email, phone, order
  }`,
	"team-member": `*[_type == "teamMember" && slug.current == $slug][0] {
    _id, name, slug, role, department, bio, image, email, phone,
    qualifications, expertise, socialMedia
  }`,
	"team-slugs": `*[_type == "teamMember" && active == true && defined(slug.current)] { "slug": slug.current }`,

	// Programs
	"program-categories": `*[_type == "program"] | order(order asc) {
    _id, title, slug, shortDescription, featuredImage, status, order
  }`,
	"program-category": `*[_type == "program" && slug.current == $slug][0] {
    _id, title, slug, shortDescription, mainBody, programImages, featuredImage,
    objectives, targetPopulation, startDate, endDate, status,
    partners[]->{ name, logo, website },
    teamMembers[]->{ name, role, image },
    locations[]->{ name, city, district }
  }`,
	"programs-by-category": `*[_type == "programs" && category->slug.current == $categorySlug] | order(order asc) {
    _id, title, slug, shortDescription, featuredImages, status, order,
    category->{ _id, title, slug }
  }`,
	"program": `*[_type == "programs" && slug.current == $slug][0] {
    _id, title, slug, shortDescription, description, featuredImages, objectives,
    targetPopulation, outcomes, startDate, endDate, status, gallery,
    category->{ _id, title, slug },
    partners[]->{ name, logo, website },
    teamMembers[]->{ name, role, image },
    locations[]->{ name, city, district }
  }`,
	"program-slugs": `*[_type == "programs" && defined(slug.current)] {
    "slug": slug.current, "category": category->slug.current
  }`,

	// Research
	"research": `*[_type == "research"] | order(startDate desc) {
    _id, title, slug, researchType, summary, status, startDate, endDate, featuredImage
  }`,
	"research-by-type": `*[_type == "research" && researchType == $type] | order(startDate desc) {
    _id, title, slug, researchType, summary, status, startDate, endDate, featuredImage,
    principalInvestigator->{ name, role }
  }`,
	"research-by-status": `*[_type == "research" && status == $status] | order(startDate desc) {
    _id, title, slug, researchType, summary, status, startDate, endDate, featuredImage,
    principalInvestigator->{ name, role }
  }`,
	"research-study": `*[_type == "research" && slug.current == $slug][0] {
    _id, title, slug, researchType, studyPhase, description, summary, objectives, methodology,
    principalInvestigator->{ name, role, image, email },
    coInvestigators[]->{ name, role, image },
    partners[]->{ name, logo, website },
    fundingSource, startDate, endDate, status, targetEnrollment, currentEnrollment,
    featuredImage, publications, ethicsApproval, registrationNumber, keywords
  }`,
	"research-slugs": `*[_type == "research" && defined(slug.current)] { "slug": slug.current }`,

	// Partners
	"partners": `*[_type == "partner"] | order(order asc) {
    _id, name, slug, partnerType, logo, website, country, featured, order
  }`,
	"featured-partners": `*[_type == "partner"] { _id, name, logo, website }`,

	// Opportunities
	"careers": `*[_type == "career" && status == "open" && applicationDeadline > now()] | order(publishedAt desc) {
    _id, title, slug, department, employmentType,
    location->{ name, city },
    applicationDeadline, publishedAt, status
  }`,
	"tenders": `*[_type == "tender" && status == "open" && submissionDeadline > now()] | order(publishedAt desc) {
    _id, title, slug, tenderNumber, category, submissionDeadline, publishedAt, status
  }`,

	// Locations and resources
	"locations": `*[_type == "location"] | order(order asc) {
    _id, name, slug, locationType, address, city, district, region, country,
    coordinates, contactPhone, contactEmail, isPrimary, order
  }`,
	"resources": `*[_type == "resource"] | order(publishedDate desc) {
    _id, title, slug, Conference, resourceType, file{ asset->{ _ref, url } },
    externalLink, publishedDate, authors, featured
  }`,
}
