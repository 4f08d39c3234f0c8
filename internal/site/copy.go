package site

// Fixed page copy that is part of the layout rather than the content set.
const (
	heroGreeting = "Hi, I'm"
	footerBlurb  = "A passionate full-stack developer focused on creating modern and efficient web solutions."

	aboutHighlight = "Me"
	aboutSubtitle  = "A passionate full-stack developer crafting modern web experiences"
	aboutSpecialty = "I specialize in modern web technologies like React, TypeScript, and Three.js, combining technical expertise with creative design to build engaging digital experiences."
	aboutImage     = "https://images.unsplash.com/photo-1498050108023-c5249f4df085?auto=format&fit=crop&w=1000&q=80"

	servicesIntro     = "I offer a comprehensive range of web development services, focusing on creating modern, scalable, and user-friendly applications."
	portfolioIntro    = "A collection of projects showcasing my skills and experience"
	blogIntro         = "Sharing my thoughts, experiences, and insights about web development, programming, and technology."
	contactIntro      = "Feel free to reach out to me for any questions or opportunities."
	postNotFound      = "Blog post not found"
	pageNotFound      = "Page not found"
	backToBlog        = "Back to Blog"
	backHome          = "Back to Home"
	projectsRefreshTo = "/api/projects/refresh"
)

const heroSnippet = "```javascript\n" + `const Developer = {
  name: "MD TOUFIQUE",
  role: "Full Stack Developer",
  skills: [
    "React", "TypeScript",
    "Node.js", "Next.js",
    "MongoDB", "TailwindCSS"
  ],
  passion: "Building scalable web apps",
  code: () => {
    while (true) {
      learn();
      create();
      innovate();
    }
  }
};` + "\n```\n"

const servicesSnippet = "```javascript\n" + `// Example of a service implementation
const createWebApp = async (requirements) => {
  const stack = {
    frontend: ['React', 'TypeScript', 'TailwindCSS'],
    backend: ['Node.js', 'Express', 'MongoDB'],
    deployment: ['Vercel', 'Docker', 'CI/CD']
  };

  const features = [
    'Responsive Design',
    'API Integration',
    'Database Management',
    'Performance Optimization'
  ];

  return {
    result: 'High-quality web application',
    timeline: 'Efficient delivery',
    support: '24/7 maintenance'
  };
};` + "\n```\n"
